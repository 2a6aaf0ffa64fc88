package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skingford/book-web/internal/app"
	"github.com/skingford/book-web/internal/logger"
)

// NewServeCmd creates the serve command
func NewServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Serve the JSON API until SIGINT or SIGTERM. When BOOKWEB_IMPORT_FILE is set
the file is imported at start and then every BOOKWEB_IMPORT_INTERVAL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = loggerClient.Sync() }()

	a, err := app.New(commandContext(cmd), cfg, loggerClient)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return a.Run()
}
