package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/flows"
)

// NewCategoriesCmd creates the categories command
func NewCategoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Manage categories",
		Long: `Manage categories with various subcommands:
  list   - Show categories with their bookmark count (default)
  add    - Create a category
  delete - Delete a category and all its bookmarks (with confirmation)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listCategories(cmd, opts)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listCategories(cmd, opts)
		},
	}

	var in flows.CategoryInput
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
				return reportState(cmd.OutOrStdout(), core.Categories.Create(ctx, nil, in), "Category created")
			})
		},
	}
	addCmd.Flags().StringVar(&in.Color, "color", "", "hex color (default: first palette color)")
	addCmd.Flags().StringVarP(&in.Description, "description", "d", "", "optional description")

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a category and its bookmarks",
		Long:  `Delete a category. Every bookmark it contains is deleted first. This action cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
				id, err := resolveCategory(ctx, core.Categories, args[0])
				if err != nil {
					return err
				}
				s := core.Categories.Delete(ctx, nil, id, confirmer(yes, cmd.InOrStdin(), cmd.OutOrStdout()))
				return reportState(cmd.OutOrStdout(), s, "Category deleted")
			})
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(listCmd, addCmd, deleteCmd)
	return cmd
}

func listCategories(cmd *cobra.Command, opts *rootOptions) error {
	return opts.withCore(cmd, func(ctx context.Context, _ *config.Config, core *app.Core) error {
		cats, err := core.Categories.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(cats) == 0 {
			fmt.Fprintln(out, "No categories yet")
			return nil
		}

		tw := newTable(out)
		fmt.Fprintln(tw, "ID\tNAME\tCOLOR\tBOOKMARKS")
		for _, c := range cats {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Color, c.BookmarkCount)
		}
		return tw.Flush()
	})
}
