package handlers

import (
	"net/http"

	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/httpserver/deps"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/search"
)

type historyResponse struct {
	History []string `json:"history"`
}

type popularResponse struct {
	Popular  []string `json:"popular"`
	Debounce string   `json:"debounce"`
}

// Search filters bookmarks by ?q=, optionally within ?category= and ordered
// by ?sort=relevance|date|title.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		sortBy, err := search.ParseSortBy(q.Get("sort"))
		if err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}

		res, err := d.Search.Search(r.Context(), q.Get("q"), search.Options{
			CategoryID: q.Get("category"),
			SortBy:     sortBy,
		})
		if err != nil {
			d.Logger.Error("search failed", logger.String("query", q.Get("q")), logger.Error(err))
			writeError(w, d.Logger, http.StatusServiceUnavailable, flows.MsgRetry)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, res)
	}
}

func SearchHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := d.Search.History(r.Context())
		if err != nil {
			d.Logger.Warn("failed to read search history", logger.Error(err))
			h = nil
		}
		if h == nil {
			h = []string{}
		}
		writeJSON(w, d.Logger, http.StatusOK, historyResponse{History: h})
	}
}

func ClearSearchHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Search.ClearHistory(r.Context()); err != nil {
			d.Logger.Error("failed to clear search history", logger.Error(err))
			writeError(w, d.Logger, http.StatusServiceUnavailable, flows.MsgRetry)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func PopularSearches(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		debounce := d.Debounce
		if debounce <= 0 {
			debounce = search.DefaultDebounce
		}
		writeJSON(w, d.Logger, http.StatusOK, popularResponse{
			Popular:  d.Search.Popular(),
			Debounce: debounce.String(),
		})
	}
}
