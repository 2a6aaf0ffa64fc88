package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/httpserver"
	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/scheduler"
	"github.com/skingford/book-web/internal/version"
)

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	core     *Core
	server   *httpserver.Server
	reloader *scheduler.ImportReloader
}

func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	core, err := Open(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	// Initialize the import reloader (if an import file is configured)
	var (
		reloader      *scheduler.ImportReloader
		importTrigger chan struct{}
		importStatus  func() (scheduler.Report, time.Time)
	)
	if cfg.ImportFile != "" {
		loggerClient.Info("import file configured, initializing import reloader",
			logger.String("file", cfg.ImportFile))
		importTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewImportReloader(
			cfg.ImportFile,
			core.Importer,
			loggerClient,
			cfg.ImportInterval,
			importTrigger,
		)
		importStatus = reloader.Last
	} else {
		loggerClient.Info("import file not configured, import disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Build:         version.Get(),
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateLimit:     deps.RateLimit{Burst: cfg.RateLimitBurst, PerMinute: cfg.RateLimitPerMin},
		Gateway:       core.Store,
		History:       core.History,
		HistoryKV:     core.HistoryKV,
		Categories:    core.Categories,
		Bookmarks:     core.Bookmarks,
		Search:        core.Search,
		Debounce:      cfg.SearchDebounce,
		ImportTrigger: importTrigger,
		ImportStatus:  importStatus,
	}

	return &App{
		cfg:      cfg,
		logger:   loggerClient,
		core:     core,
		server:   httpserver.New(cfg, loggerClient, d),
		reloader: reloader,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down within ShutdownTimeout.
func (a *App) Run() error {
	defer a.core.Close()

	a.logger.Infof("🚀 Starting %s on %s", version.Get(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start import reloader (imports once and starts periodic refresh)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start import reloader: %w", err)
		}
		a.logger.Info("import reloader started",
			logger.Duration("interval", a.cfg.ImportInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		if a.reloader != nil {
			a.reloader.Stop()
		}
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ bookweb stopped cleanly")
	return nil
}
