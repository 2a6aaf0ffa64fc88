package mw

import (
	"net/http"

	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/utils"
)

// Passthrough is the middleware that does nothing.
func Passthrough(next http.Handler) http.Handler { return next }

// AllowOnlyCIDRS answers 403 to clients outside the allowed IPs and CIDRs.
// An empty list allows everyone. Proxy headers only count with trustProxy.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return Passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := utils.ClientIP(r, trustProxy); !m.Allow(ip) {
				log.Debug("client ip rejected",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				reject(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// reject writes the API's JSON error body.
func reject(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}` + "\n"))
}
