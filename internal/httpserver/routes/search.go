package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/handlers"
	"github.com/skingford/book-web/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Route("/api/search", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.Search(d))
		r.Get("/popular", handlers.PopularSearches(d))
		r.Get("/history", handlers.SearchHistory(d))
		r.Delete("/history", handlers.ClearSearchHistory(d))
	})

	// Suggestions may fetch remote pages.
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger), writeLimit(d)).Get("/api/suggest", handlers.Suggest(d))
}
