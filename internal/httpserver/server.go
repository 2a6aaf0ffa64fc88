package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/handlers"
	"github.com/skingford/book-web/internal/httpserver/mw"
	"github.com/skingford/book-web/internal/httpserver/routes"
	"github.com/skingford/book-web/internal/logger"
)

// requestTimeout leaves room for a remote metadata fetch.
const requestTimeout = 10 * time.Second

// Server is the bookweb HTTP API.
type Server struct {
	http    *http.Server
	logger  logger.Logger
	started time.Time
}

// NewRouter returns the API handler: global middlewares, JSON fallbacks and
// every registered route group.
func NewRouter(loggerClient logger.Logger, d deps.Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.GetHead,
		middleware.RequestID,
		middleware.Recoverer,
		mw.Log(loggerClient, d.TrustProxy),
		middleware.Timeout(requestTimeout),
		middleware.Compress(5, "application/json"),
	)
	r.NotFound(handlers.NotFound(loggerClient))
	r.MethodNotAllowed(handlers.MethodNotAllowed(loggerClient))

	routes.RegisterAll(r, d)
	return r
}

// New builds the server. Writes may run up to requestTimeout plus encoding.
func New(cfg *config.Config, loggerClient logger.Logger, d deps.Deps) *Server {
	return &Server{
		http: &http.Server{
			Addr:              cfg.ListenPort,
			Handler:           NewRouter(loggerClient, d),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      requestTimeout + 5*time.Second,
			IdleTimeout:       time.Minute,
			MaxHeaderBytes:    1 << 20,
		},
		logger:  loggerClient,
		started: d.StartTime,
	}
}

// Start listens and serves until Stop. A graceful shutdown returns nil.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	s.logger.Info("HTTP server listening", logger.String("addr", ln.Addr().String()))

	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down",
		logger.Duration("uptime", time.Since(s.started)))
	return s.http.Shutdown(ctx)
}
