package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/handlers"
	"github.com/skingford/book-web/internal/httpserver/mw"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.ListCategories(d))
		r.Get("/{id}", handlers.GetCategory(d))

		w := r.With(writeLimit(d))
		w.Post("/", handlers.CreateCategory(d))
		w.Put("/{id}", handlers.UpdateCategory(d))
		w.Delete("/{id}", handlers.DeleteCategory(d))
	})
}
