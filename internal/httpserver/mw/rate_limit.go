package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/skingford/book-web/internal/utils"
)

// RateLimitConfig configures a per-client token bucket: Burst requests at
// once, refilled at PerMinute tokens per minute.
type RateLimitConfig struct {
	Burst      int
	PerMinute  int
	MaxClients int           // sweep idle clients early past this many, 0 = no cap
	IdleTTL    time.Duration // forget clients idle this long, default 15m
	TrustProxy bool          // resolve the client from proxy headers
	Now        func() time.Time
}

type tokenBucket struct {
	tokens  float64
	updated time.Time
}

type clientLimiter struct {
	burst      float64
	perSecond  float64
	maxClients int
	idleTTL    time.Duration

	mu        sync.Mutex
	clients   map[string]*tokenBucket
	lastSweep time.Time
}

func newClientLimiter(cfg RateLimitConfig, now time.Time) *clientLimiter {
	l := &clientLimiter{
		burst:      float64(max(cfg.Burst, 1)),
		perSecond:  float64(max(cfg.PerMinute, 1)) / 60,
		maxClients: cfg.MaxClients,
		idleTTL:    cfg.IdleTTL,
		clients:    make(map[string]*tokenBucket),
		lastSweep:  now,
	}
	if l.idleTTL <= 0 {
		l.idleTTL = 15 * time.Minute
	}
	return l
}

// take spends one token for client. When none is left it returns the
// whole seconds until the next token.
func (l *clientLimiter) take(client string, now time.Time) (remaining int, retryAfter int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= time.Minute || (l.maxClients > 0 && len(l.clients) >= l.maxClients) {
		l.sweep(now)
	}

	b, found := l.clients[client]
	if !found {
		b = &tokenBucket{tokens: l.burst, updated: now}
		l.clients[client] = b
	}
	if elapsed := now.Sub(b.updated).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.burst, b.tokens+elapsed*l.perSecond)
		b.updated = now
	}

	if b.tokens < 1 {
		wait := math.Ceil((1 - b.tokens) / l.perSecond)
		return 0, max(int(wait), 1), false
	}
	b.tokens--
	return int(b.tokens), 0, true
}

// sweep drops buckets that have refilled and sat idle. Caller holds mu.
func (l *clientLimiter) sweep(now time.Time) {
	for client, b := range l.clients {
		if now.Sub(b.updated) > l.idleTTL {
			delete(l.clients, client)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects clients that exceed their bucket with 429 and a
// Retry-After header. Every answer carries X-RateLimit-Limit and
// X-RateLimit-Remaining.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	l := newClientLimiter(cfg, now())
	limit := strconv.Itoa(int(l.burst))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			remaining, retryAfter, ok := l.take(utils.ClientIP(r, cfg.TrustProxy), now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				h.Set("Retry-After", strconv.Itoa(retryAfter))
				reject(w, http.StatusTooManyRequests, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
