package routes

import (
	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/mw"
)

// writeLimit builds the per-IP limiter shared by a route group.
// A zero burst disables it.
func writeLimit(d deps.Deps) Middleware {
	if d.RateLimit.Burst <= 0 {
		return mw.Passthrough
	}
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:      d.RateLimit.Burst,
		PerMinute:  d.RateLimit.PerMinute,
		MaxClients: 10000,
		TrustProxy: d.TrustProxy,
	})
}
