// Package cli provides the bookweb command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/version"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCmd creates the root command. Without a subcommand it serves HTTP.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "bookweb",
		Short: "Personal bookmark manager",
		Long: `bookweb keeps bookmarks organized in colored categories and finds them
again with an instant, case-insensitive search.

Configuration comes from BOOKWEB_* environment variables and an optional
bookweb.yaml file. Run without a subcommand to start the HTTP server.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: $BOOKWEB_CONFIG or ./bookweb.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at the configured level instead of warnings only")

	rootCmd.AddCommand(NewServeCmd(opts))
	rootCmd.AddCommand(NewMigrateCmd(opts))
	rootCmd.AddCommand(NewImportCmd(opts))
	rootCmd.AddCommand(NewSearchCmd(opts))
	rootCmd.AddCommand(NewCategoriesCmd(opts))
	rootCmd.AddCommand(NewBookmarksCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func (o *rootOptions) config() (*config.Config, error) {
	cfg, err := config.Read(o.configFile)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// logger keeps one-shot commands quiet unless --verbose is set.
func (o *rootOptions) logger(cfg *config.Config) logger.Logger {
	level := "warn"
	if o.verbose {
		level = cfg.LogLevel
	}
	return logger.New(level, cfg.PrettyLog)
}

// withCore opens the stores for the duration of fn.
func (o *rootOptions) withCore(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, core *app.Core) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	log := o.logger(cfg)
	defer func() { _ = log.Sync() }()

	ctx := commandContext(cmd)
	core, err := app.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer core.Close()

	return fn(ctx, cfg, core)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// NewVersionCmd prints build information.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := version.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bookweb %s\n", info.Version)
			fmt.Fprintf(out, "commit: %s\n", info.Commit)
			fmt.Fprintf(out, "built: %s\n", info.BuildDate)
			fmt.Fprintf(out, "go: %s\n", info.GoVersion)
		},
	}
}
