package mw

import (
	"net"
	"net/http"
	"strings"

	"github.com/skingford/book-web/internal/logger"
)

// EnforceHost answers 421 unless the Host header, port stripped, equals an
// allowed host or matches a "*.example.com" pattern. Case is ignored. An
// empty list allows every host.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	var patterns []string
	for _, h := range allowedHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			patterns = append(patterns, h)
		}
	}
	if len(patterns) == 0 {
		return Passthrough
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := requestHost(r)
			for _, p := range patterns {
				if host == p || (strings.HasPrefix(p, "*.") && strings.HasSuffix(host, p[1:])) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debug("host rejected", logger.String("host", r.Host))
			reject(w, http.StatusMisdirectedRequest, "unknown host")
		})
	}
}

func requestHost(r *http.Request) string {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}
