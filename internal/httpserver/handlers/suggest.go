package handlers

import (
	"net/http"
	"strings"

	"github.com/skingford/book-web/internal/httpserver/deps"
)

// Suggest proposes a title and favicon for ?url=. It always answers 200,
// possibly with an empty suggestion.
func Suggest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimSpace(r.URL.Query().Get("url"))
		if raw == "" {
			writeError(w, d.Logger, http.StatusBadRequest, "missing url parameter")
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, d.Bookmarks.SuggestTitle(r.Context(), raw))
	}
}
