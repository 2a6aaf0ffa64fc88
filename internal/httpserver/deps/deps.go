package deps

import (
	"time"

	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/scheduler"
	"github.com/skingford/book-web/internal/search"
	"github.com/skingford/book-web/internal/store"
	"github.com/skingford/book-web/internal/version"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Build        version.Info
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the API
	AllowedCIDRS []string         // IPs allowed to access infra endpoints
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	RateLimit RateLimit // per-IP limit on write and remote-fetch endpoints

	Gateway    store.Gateway     // relational store
	History    store.KV          // search history backend
	HistoryKV  string            // "redis" or "memory"
	Categories *flows.Categories // category workflows
	Bookmarks  *flows.Bookmarks  // bookmark workflows
	Search     *search.Service   // search + history
	Debounce   time.Duration     // advertised to clients typing queries

	ImportTrigger chan struct{}                        // Channel to trigger a manual import (nil if import disabled)
	ImportStatus  func() (scheduler.Report, time.Time) // last import run (nil if import disabled)
}

// RateLimit mirrors mw.RateLimitConfig without importing the middleware package.
type RateLimit struct {
	Burst     int // 0 disables limiting
	PerMinute int
}
