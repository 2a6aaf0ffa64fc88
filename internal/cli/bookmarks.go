package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/flows"
)

// NewBookmarksCmd creates the bookmarks command
func NewBookmarksCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bookmark", "bm"},
		Short:   "Manage bookmarks",
		Long: `Manage bookmarks with various subcommands:
  list   - Show bookmarks, newest first (default)
  add    - Save a bookmark
  delete - Delete a bookmark (with confirmation)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listBookmarks(cmd, opts, "")
		},
	}

	var category string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listBookmarks(cmd, opts, category)
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", "", "only this category (ID or name)")

	var in flows.BookmarkInput
	addCmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Save a bookmark",
		Long: `Save a bookmark. Without --title the title is suggested from the URL
(the page title when metadata fetching is enabled, the host name otherwise).`,
		Example: `  bookweb bookmarks add https://react.dev --category Frontend --tags "react, docs"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.URL = args[0]
			return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
				catID, err := resolveCategory(ctx, core.Categories, in.CategoryID)
				if err != nil {
					return err
				}
				in.CategoryID = catID

				if strings.TrimSpace(in.Title) == "" {
					sug := core.Bookmarks.SuggestTitle(ctx, in.URL)
					in.Title = sug.Title
					if in.FaviconURL == "" {
						in.FaviconURL = sug.FaviconURL
					}
				}
				return reportState(cmd.OutOrStdout(), core.Bookmarks.Create(ctx, nil, in), "Bookmark saved")
			})
		},
	}
	addCmd.Flags().StringVarP(&in.Title, "title", "t", "", "title (default: suggested from the URL)")
	addCmd.Flags().StringVarP(&in.CategoryID, "category", "c", "", "category ID or name (required)")
	addCmd.Flags().StringVarP(&in.Description, "description", "d", "", "optional description")
	addCmd.Flags().StringVar(&in.Tags, "tags", "", "comma separated tags")

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
				s := core.Bookmarks.Delete(ctx, nil, args[0], confirmer(yes, cmd.InOrStdin(), cmd.OutOrStdout()))
				return reportState(cmd.OutOrStdout(), s, "Bookmark deleted")
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(listCmd, addCmd, deleteCmd)
	return cmd
}

func listBookmarks(cmd *cobra.Command, opts *rootOptions, category string) error {
	return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
		catID, err := resolveCategory(ctx, core.Categories, category)
		if err != nil {
			return err
		}
		rows, err := core.Bookmarks.List(ctx, catID)
		if err != nil {
			return fmt.Errorf("failed to list bookmarks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No bookmarks yet")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tURL")
		for _, b := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.ID,
				shorten(b.Title, maxTitleDisplay), b.Category.Name, shorten(b.URL, maxURLDisplay))
		}
		return tw.Flush()
	})
}
