package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/store/db"
	"github.com/skingford/book-web/internal/utils"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Long:  `Create the categories and bookmarks tables and their indexes when missing. Safe to run repeatedly.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			log := opts.logger(cfg)
			defer func() { _ = log.Sync() }()

			ctx := commandContext(cmd)
			st, err := db.Open(ctx, db.Options{
				Driver:       cfg.DBDriver,
				DSN:          cfg.DBDSN,
				MaxOpenConns: cfg.DBMaxOpenConns,
			})
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer utils.CloseLogged(st, "database", log)

			if err := st.Migrate(ctx); err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Schema ready (%s)\n", st.Driver())
			return nil
		},
	}
}
