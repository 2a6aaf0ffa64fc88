package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/httpserver/deps"
)

type (
	// Registrar mounts one group of routes.
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

var registrars []Registrar

// Register adds a route group. Called from init() in each routes file.
func Register(reg Registrar) {
	registrars = append(registrars, reg)
}

// RegisterAll mounts every group on r. Called once per router.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registrars {
		reg(r, d)
	}
}
