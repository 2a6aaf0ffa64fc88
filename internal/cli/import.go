package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/sources/homepage"
)

// NewImportCmd creates the import command
func NewImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a Homepage bookmarks.yaml or services.yaml",
		Long: `Import the groups of a Homepage configuration file as categories and their
links as bookmarks. Categories are matched by name ignoring case and bookmarks
by URL within their category, so importing the same file twice adds nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := homepage.NewLoader(args[0]).Load()
			if err != nil {
				return err
			}

			return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
				rep, err := core.Importer.Import(ctx, groups)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %s: %d categories (%d new), %d bookmarks (%d new)\n",
					args[0], rep.Categories, rep.CategoriesCreated, rep.Bookmarks, rep.BookmarksCreated)
				return nil
			})
		},
	}
}
