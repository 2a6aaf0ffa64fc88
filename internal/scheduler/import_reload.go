package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/sources/homepage"
)

// ImportReloader re-imports a Homepage file on an interval and on demand.
type ImportReloader struct {
	loader        *homepage.Loader
	importer      *Importer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}

	mu   sync.Mutex
	last Report
	at   time.Time
}

// NewImportReloader creates a new import reloader
func NewImportReloader(
	importFile string,
	importer *Importer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ImportReloader {
	return &ImportReloader{
		loader:        homepage.NewLoader(importFile),
		importer:      importer,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start imports once, then keeps re-importing in the background.
func (ir *ImportReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if _, err := ir.Reload(ctx); err != nil {
		return fmt.Errorf("initial import failed: %w", err)
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ir.reloadAndLog(ctx)
			case <-ir.manualTrigger:
				ir.logger.Info("manual import triggered")
				ir.reloadAndLog(ctx)
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ir *ImportReloader) Stop() {
	ir.stopOnce.Do(func() { close(ir.stopCh) })
}

// Reload loads the file and imports it.
func (ir *ImportReloader) Reload(ctx context.Context) (Report, error) {
	ir.logger.Info("importing bookmarks", logger.String("file", ir.loader.Path()))

	groups, err := ir.loader.Load()
	if err != nil {
		return Report{}, fmt.Errorf("failed to load import file: %w", err)
	}

	rep, err := ir.importer.Import(ctx, groups)
	if err != nil {
		return rep, fmt.Errorf("failed to import bookmarks: %w", err)
	}

	ir.mu.Lock()
	ir.last, ir.at = rep, time.Now()
	ir.mu.Unlock()
	return rep, nil
}

// Last returns the report of the latest successful run and when it finished.
func (ir *ImportReloader) Last() (Report, time.Time) {
	ir.mu.Lock()
	defer ir.mu.Unlock()
	return ir.last, ir.at
}

func (ir *ImportReloader) reloadAndLog(ctx context.Context) {
	if _, err := ir.Reload(ctx); err != nil {
		ir.logger.Error("failed to import bookmarks", logger.Error(err))
	}
}

// Trigger asks a running reloader for an import without blocking.
// It reports false when one is already pending.
func Trigger(ch chan<- struct{}) bool {
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
