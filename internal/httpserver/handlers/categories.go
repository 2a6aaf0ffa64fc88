package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/httpserver/deps"
)

type categoryListResponse struct {
	Categories []domain.CategoryWithCount `json:"categories"`
	Palette    []string                   `json:"palette"`
}

type categoryDetailResponse struct {
	domain.CategoryWithBookmarks
	Input flows.CategoryInput `json:"input"`
}

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := d.Categories.List(r.Context())
		if err != nil {
			writeLoadError(w, d.Logger, "list categories", err)
			return
		}
		if cats == nil {
			cats = []domain.CategoryWithCount{}
		}
		writeJSON(w, d.Logger, http.StatusOK, categoryListResponse{Categories: cats, Palette: domain.PresetColors})
	}
}

// GetCategory returns the category with its bookmarks and its edit-form values.
func GetCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := d.Categories.Detail(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeLoadError(w, d.Logger, "load category", err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, categoryDetailResponse{
			CategoryWithBookmarks: detail,
			Input:                 flows.CategoryInputFrom(detail.Category),
		})
	}
}

func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in flows.CategoryInput
		if err := decode(w, r, &in); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}
		writeState(w, d.Logger, d.Categories.Create(r.Context(), nil, in), true)
	}
}

func UpdateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in flows.CategoryInput
		if err := decode(w, r, &in); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, err.Error())
			return
		}
		writeState(w, d.Logger, d.Categories.Update(r.Context(), nil, chi.URLParam(r, "id"), in), false)
	}
}

// DeleteCategory removes the category and its bookmarks. The client confirms
// with ?confirm=true; anything else is a declined confirmation.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := d.Categories.Delete(r.Context(), nil, chi.URLParam(r, "id"), confirmed(r))
		writeState(w, d.Logger, s, false)
	}
}

func confirmed(r *http.Request) flows.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return flows.Confirmed(ok)
}
