package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/httpserver/deps"
)

type bookmarkListResponse struct {
	Bookmarks []domain.BookmarkWithCategory `json:"bookmarks"`
}

func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := d.Bookmarks.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			writeLoadError(w, d.Logger, "list bookmarks", err)
			return
		}
		if rows == nil {
			rows = []domain.BookmarkWithCategory{}
		}
		writeJSON(w, d.Logger, http.StatusOK, bookmarkListResponse{Bookmarks: rows})
	}
}

// NewBookmarkForm returns the create-form defaults. ?category= preselects.
func NewBookmarkForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := d.Bookmarks.NewForm(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			writeLoadError(w, d.Logger, "load bookmark form", err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, form)
	}
}

// EditBookmark loads the bookmark and the category options together.
func EditBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := d.Bookmarks.LoadForEdit(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeLoadError(w, d.Logger, "load bookmark", err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, form)
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in flows.BookmarkInput
		if err := decode(w, r, &in); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}
		writeState(w, d.Logger, d.Bookmarks.Create(r.Context(), nil, in), true)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in flows.BookmarkInput
		if err := decode(w, r, &in); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}
		writeState(w, d.Logger, d.Bookmarks.Update(r.Context(), nil, chi.URLParam(r, "id"), in), false)
	}
}

func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := d.Bookmarks.Delete(r.Context(), nil, chi.URLParam(r, "id"), confirmed(r))
		writeState(w, d.Logger, s, false)
	}
}
