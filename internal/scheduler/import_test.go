package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/sources/homepage"
	"github.com/skingford/book-web/internal/store"
	"github.com/skingford/book-web/internal/store/db"
)

func openStore(t *testing.T) *db.Store {
	t.Helper()
	s, err := db.Open(context.Background(), db.Options{Driver: db.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func countBookmarks(t *testing.T, gw store.Gateway) int {
	t.Helper()
	rows, err := gw.ListBookmarks(context.Background(), store.BookmarkFilter{})
	require.NoError(t, err)
	return len(rows)
}

func TestImportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	im := NewImporter(s, logger.Nop())

	existing, err := s.InsertCategory(ctx, domain.Category{Name: "Developer", Color: "#000000"})
	require.NoError(t, err)

	groups := []homepage.Group{
		{Name: "developer", Links: []homepage.Link{
			{Title: "Go", URL: "https://go.dev", Tags: []string{"homepage"}},
			{Title: "Rust", URL: "https://rust-lang.org", Description: "systems"},
		}},
		{Name: "Social", Links: []homepage.Link{
			{Title: "Reddit", URL: "https://reddit.com"},
		}},
	}

	rep, err := im.Import(ctx, groups)
	require.NoError(t, err)
	assert.Equal(t, Report{Categories: 2, CategoriesCreated: 1, Bookmarks: 3, BookmarksCreated: 3}, rep)

	rows, err := s.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: existing.ID, Order: store.Order{Column: "title", Ascending: true}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Go", rows[0].Title)
	assert.Equal(t, []string{"homepage"}, rows[0].Tags)
	require.NotNil(t, rows[1].Description)
	assert.Equal(t, "systems", *rows[1].Description)

	groups[1].Name = "SOCIAL"
	rep, err = im.Import(ctx, groups)
	require.NoError(t, err)
	assert.Equal(t, 0, rep.CategoriesCreated)
	assert.Equal(t, 0, rep.BookmarksCreated)
	assert.Equal(t, 3, countBookmarks(t, s))

	cats, err := s.ListCategories(ctx, store.OrderByName)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestImportTruncatesLongText(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, err := NewImporter(s, logger.Nop()).Import(ctx, []homepage.Group{
		{Name: strings.Repeat("c", 80), Links: []homepage.Link{
			{Title: strings.Repeat("t", 150), URL: "https://example.com"},
		}},
	})
	require.NoError(t, err)

	rows, err := s.ListBookmarks(ctx, store.BookmarkFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Title, maxTitle)
	assert.Len(t, rows[0].Category.Name, maxCategoryName)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "éé", truncate("ééé", 2))
	assert.Equal(t, "a", truncate("a bc", 2))
}

func writeImportFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImportReloader(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := openStore(t)
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	writeImportFile(t, path, `
- Dev:
    - Go:
        - href: https://go.dev
`)

	trigger := make(chan struct{}, 1)
	r := NewImportReloader(path, NewImporter(s, logger.Nop()), logger.Nop(), time.Hour, trigger)
	require.NoError(t, r.Start(ctx))
	defer r.Stop()

	assert.Equal(t, 1, countBookmarks(t, s))
	rep, at := r.Last()
	assert.Equal(t, 1, rep.BookmarksCreated)
	assert.False(t, at.IsZero())

	writeImportFile(t, path, `
- Dev:
    - Go:
        - href: https://go.dev
    - Docker:
        - href: https://docs.docker.com
`)
	require.True(t, Trigger(trigger))

	assert.Eventually(t, func() bool {
		rows, err := s.ListBookmarks(ctx, store.BookmarkFilter{})
		return err == nil && len(rows) == 2
	}, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	r.Stop()
}

func TestImportReloaderStartFails(t *testing.T) {
	s := openStore(t)
	r := NewImportReloader(filepath.Join(t.TempDir(), "missing.yaml"), NewImporter(s, logger.Nop()), logger.Nop(), time.Hour, nil)
	assert.Error(t, r.Start(context.Background()))
}

func TestTrigger(t *testing.T) {
	ch := make(chan struct{}, 1)
	assert.True(t, Trigger(ch))
	assert.False(t, Trigger(ch))
	<-ch
	assert.True(t, Trigger(ch))
}
