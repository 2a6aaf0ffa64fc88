package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/handlers"
	"github.com/skingford/book-web/internal/httpserver/mw"
)

func init() { Register(registerHealth) }

func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	infra := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	infra.Get("/readyz", handlers.Readyz(d))
	infra.Get("/infra", handlers.Infra(d))
}
