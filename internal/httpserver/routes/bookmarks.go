package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/httpserver/handlers"
	"github.com/skingford/book-web/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Route("/api/bookmarks", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.ListBookmarks(d))
		r.Get("/new", handlers.NewBookmarkForm(d))
		r.Get("/{id}", handlers.EditBookmark(d))

		w := r.With(writeLimit(d))
		w.Post("/", handlers.CreateBookmark(d))
		w.Put("/{id}", handlers.UpdateBookmark(d))
		w.Delete("/{id}", handlers.DeleteBookmark(d))
	})
}
