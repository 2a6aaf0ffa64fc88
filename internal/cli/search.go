package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/search"
)

type searchFlags struct {
	category    string
	sort        string
	limit       int
	interactive bool
}

// NewSearchCmd creates the search command
func NewSearchCmd(opts *rootOptions) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search bookmarks",
		Long: `Search bookmark titles, URLs, descriptions and tags, ignoring case.

With --interactive, every line read from stdin is a new query. Lines typed
within the debounce window replace each other and only the last one runs.
An empty line shows the recent searches.`,
		Example: `  bookweb search react --sort title
  bookweb search docs --category Frontend --limit 5
  bookweb search --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if !flags.interactive && strings.TrimSpace(query) == "" {
				return fmt.Errorf("a query is required unless --interactive is set")
			}
			sortBy, err := search.ParseSortBy(flags.sort)
			if err != nil {
				return err
			}

			return opts.withCore(cmd, func(ctx context.Context, cfg *config.Config, core *app.Core) error {
				catID, err := resolveCategory(ctx, core.Categories, flags.category)
				if err != nil {
					return err
				}
				searchOpts := search.Options{CategoryID: catID, SortBy: sortBy}

				if flags.interactive {
					return interactiveSearch(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cfg, core, searchOpts, flags.limit)
				}

				res, err := core.Search.Search(ctx, query, searchOpts)
				if err != nil {
					return fmt.Errorf("search failed: %w", err)
				}
				printResult(cmd.OutOrStdout(), res, flags.limit)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&flags.category, "category", "c", "", "restrict to a category (ID or name)")
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", "relevance", "order: relevance, date or title")
	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "number of results to show (0 = server limit)")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "read queries from stdin")

	return cmd
}

func interactiveSearch(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, core *app.Core, opts search.Options, limit int) error {
	var mu sync.Mutex

	sess := core.Search.NewSession(ctx, cfg.SearchDebounce, func(res search.Result, err error) {
		mu.Lock()
		defer mu.Unlock()

		if err != nil {
			fmt.Fprintf(out, "search failed: %v\n", err)
			return
		}
		if strings.TrimSpace(res.Query) == "" {
			printHistory(ctx, out, core.Search)
			return
		}
		printResult(out, res, limit)
	})
	defer sess.Close()

	fmt.Fprintf(out, "Popular: %s\n", strings.Join(core.Search.Popular(), ", "))
	fmt.Fprintln(out, "Type a query per line, Ctrl-D to quit.")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		sess.Type(scanner.Text(), opts)
	}
	sess.Flush()
	return scanner.Err()
}

func printHistory(ctx context.Context, out io.Writer, svc *search.Service) {
	h, err := svc.History(ctx)
	if err != nil || len(h) == 0 {
		fmt.Fprintln(out, "No recent searches")
		return
	}
	fmt.Fprintf(out, "Recent: %s\n", strings.Join(h, ", "))
}
