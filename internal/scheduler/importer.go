package scheduler

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/sources/homepage"
	"github.com/skingford/book-web/internal/store"
)

// Field limits applied to imported text, same as the forms.
const (
	maxCategoryName = 50
	maxTitle        = 100
	maxDescription  = 500
)

// Report summarizes one import run.
type Report struct {
	Categories        int `json:"categories"`
	CategoriesCreated int `json:"categories_created"`
	Bookmarks         int `json:"bookmarks"`
	BookmarksCreated  int `json:"bookmarks_created"`
}

// Importer writes Homepage groups into the store. Running it twice with the
// same groups creates nothing the second time: categories are matched by
// name (case-insensitive) and bookmarks by URL within their category.
type Importer struct {
	gw     store.Gateway
	logger logger.Logger
}

func NewImporter(gw store.Gateway, log logger.Logger) *Importer {
	return &Importer{gw: gw, logger: log}
}

// Import runs one transaction per group. A failed group stops the run;
// groups already imported stay.
func (im *Importer) Import(ctx context.Context, groups []homepage.Group) (Report, error) {
	var rep Report

	existing, err := im.gw.ListCategories(ctx, store.OrderNewest)
	if err != nil {
		return rep, err
	}
	byName := make(map[string]domain.Category, len(existing))
	for _, c := range existing {
		byName[strings.ToLower(c.Name)] = c
	}
	palette := len(existing)

	for _, g := range groups {
		name := truncate(strings.TrimSpace(g.Name), maxCategoryName)
		if name == "" {
			continue
		}
		rep.Categories++

		err := im.gw.InTx(ctx, func(tx store.Gateway) error {
			cat, ok := byName[strings.ToLower(name)]
			if !ok {
				created, err := tx.InsertCategory(ctx, domain.Category{
					Name:  name,
					Color: domain.PresetColors[palette%len(domain.PresetColors)],
				})
				if err != nil {
					return err
				}
				palette++
				rep.CategoriesCreated++
				cat = created
				byName[strings.ToLower(name)] = cat
			}

			rows, err := tx.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: cat.ID})
			if err != nil {
				return err
			}
			known := make(map[string]bool, len(rows))
			for _, r := range rows {
				known[r.URL] = true
			}

			for _, l := range g.Links {
				rep.Bookmarks++
				if known[l.URL] {
					continue
				}
				if _, err := tx.InsertBookmark(ctx, domain.Bookmark{
					Title:       truncate(l.Title, maxTitle),
					URL:         l.URL,
					Description: domain.OptionalText(truncate(l.Description, maxDescription)),
					FaviconURL:  domain.OptionalText(l.FaviconURL),
					Tags:        l.Tags,
					CategoryID:  cat.ID,
				}); err != nil {
					return err
				}
				known[l.URL] = true
				rep.BookmarksCreated++
			}
			return nil
		})
		if err != nil {
			im.logger.Error("import group failed",
				logger.String("category", name),
				logger.Error(err))
			return rep, err
		}
	}

	im.logger.Info("import finished",
		logger.Int("categories", rep.Categories),
		logger.Int("categories_created", rep.CategoriesCreated),
		logger.Int("bookmarks", rep.Bookmarks),
		logger.Int("bookmarks_created", rep.BookmarksCreated))
	return rep, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
