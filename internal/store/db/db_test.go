package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/store"
)

// newTestSQLite opens a private in-memory database with a deterministic clock.
func newTestSQLite(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), Options{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s
}

func strPtr(s string) *string { return &s }

func seedCategory(t *testing.T, s *Store, name string) domain.Category {
	t.Helper()
	c, err := s.InsertCategory(context.Background(), domain.Category{Name: name})
	require.NoError(t, err)
	return c
}

func seedBookmark(t *testing.T, s *Store, categoryID, title string, tags ...string) domain.Bookmark {
	t.Helper()
	b, err := s.InsertBookmark(context.Background(), domain.Bookmark{
		Title:      title,
		URL:        "https://example.com/" + title,
		CategoryID: categoryID,
		Tags:       tags,
	})
	require.NoError(t, err)
	return b
}

func TestSQLiteCategoryRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	created, err := s.InsertCategory(ctx, domain.Category{
		Name:        "Frontend",
		Description: strPtr("UI things"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultColor, created.Color)

	got, err := s.GetCategory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Frontend", got.Name)
	assert.Equal(t, domain.DefaultColor, got.Color)
	require.NotNil(t, got.Description)
	assert.Equal(t, "UI things", *got.Description)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "created_at %v != %v", created.CreatedAt, got.CreatedAt)

	_, err = s.GetCategory(ctx, "missing")
	assert.True(t, domain.IsNotFound(err))
}

func TestSQLiteBookmarkRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()
	c := seedCategory(t, s, "Dev")

	t.Run("tags keep order and duplicates", func(t *testing.T) {
		created, err := s.InsertBookmark(ctx, domain.Bookmark{
			Title:       "React Docs",
			URL:         "https://react.dev",
			Description: strPtr("the docs"),
			CategoryID:  c.ID,
			Tags:        domain.ParseTags("a, b, b"),
		})
		require.NoError(t, err)

		got, err := s.GetBookmark(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "b"}, got.Tags)
		assert.Equal(t, "React Docs", got.Title)
		assert.Equal(t, "https://react.dev", got.URL)
		assert.Equal(t, c.ID, got.CategoryID)
		require.NotNil(t, got.Description)
		assert.Equal(t, "the docs", *got.Description)
		assert.Nil(t, got.FaviconURL)
	})

	t.Run("empty tags are stored as null", func(t *testing.T) {
		created, err := s.InsertBookmark(ctx, domain.Bookmark{
			Title: "No tags", URL: "https://example.com", CategoryID: c.ID, Tags: []string{},
		})
		require.NoError(t, err)

		var raw *string
		require.NoError(t, sqlx.GetContext(ctx, s.q, &raw, "SELECT tags FROM bookmarks WHERE id = ?", created.ID))
		assert.Nil(t, raw)

		got, err := s.GetBookmark(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Tags)
	})
}

func TestSQLiteForeignKeyEnforced(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	_, err := s.InsertBookmark(ctx, domain.Bookmark{Title: "x", URL: "https://x.io", CategoryID: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForeignKey), "got %v", err)

	var se *domain.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "insert", se.Op)
	assert.Equal(t, "bookmarks", se.Table)

	c := seedCategory(t, s, "Owner")
	seedBookmark(t, s, c.ID, "child")
	err = s.DeleteCategory(ctx, c.ID)
	assert.True(t, errors.Is(err, domain.ErrForeignKey), "got %v", err)
}

func TestSQLiteCascadeDelete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	c := seedCategory(t, s, "Doomed")
	other := seedCategory(t, s, "Survivor")
	seedBookmark(t, s, c.ID, "one")
	seedBookmark(t, s, c.ID, "two")
	kept := seedBookmark(t, s, other.ID, "kept")

	err := s.InTx(ctx, func(tx store.Gateway) error {
		n, err := tx.DeleteBookmarksByCategory(ctx, c.ID)
		if err != nil {
			return err
		}
		assert.EqualValues(t, 2, n)
		return tx.DeleteCategory(ctx, c.ID)
	})
	require.NoError(t, err)

	left, err := s.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: c.ID})
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = s.GetCategory(ctx, c.ID)
	assert.True(t, domain.IsNotFound(err))

	all, err := s.ListBookmarks(ctx, store.BookmarkFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)
}

func TestSQLiteInTxRollback(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	c := seedCategory(t, s, "Keep")
	seedBookmark(t, s, c.ID, "one")

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx store.Gateway) error {
		if _, err := tx.DeleteBookmarksByCategory(ctx, c.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	left, err := s.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: c.ID})
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestSQLiteListings(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	zeta := seedCategory(t, s, "Zeta")
	alpha := seedCategory(t, s, "Alpha")
	seedBookmark(t, s, zeta.ID, "first", "go")
	seedBookmark(t, s, zeta.ID, "second")
	seedBookmark(t, s, alpha.ID, "third")

	t.Run("categories by name", func(t *testing.T) {
		cats, err := s.ListCategories(ctx, store.OrderByName)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Alpha", cats[0].Name)
		assert.Equal(t, "Zeta", cats[1].Name)
	})

	t.Run("categories with counts newest first", func(t *testing.T) {
		cats, err := s.ListCategoriesWithCount(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 2)
		assert.Equal(t, "Alpha", cats[0].Name)
		assert.Equal(t, 1, cats[0].BookmarkCount)
		assert.Equal(t, "Zeta", cats[1].Name)
		assert.Equal(t, 2, cats[1].BookmarkCount)
	})

	t.Run("bookmarks newest first with category", func(t *testing.T) {
		bms, err := s.ListBookmarks(ctx, store.BookmarkFilter{})
		require.NoError(t, err)
		require.Len(t, bms, 3)
		assert.Equal(t, "third", bms[0].Title)
		assert.Equal(t, "Alpha", bms[0].Category.Name)
		assert.Equal(t, domain.DefaultColor, bms[0].Category.Color)
		assert.Equal(t, "first", bms[2].Title)
		assert.Equal(t, []string{"go"}, bms[2].Tags)
	})

	t.Run("bookmarks of one category", func(t *testing.T) {
		bms, err := s.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: zeta.ID})
		require.NoError(t, err)
		require.Len(t, bms, 2)
		for _, b := range bms {
			assert.Equal(t, zeta.ID, b.Category.ID)
		}
	})

	t.Run("unknown order column rejected", func(t *testing.T) {
		_, err := s.ListBookmarks(ctx, store.BookmarkFilter{Order: store.Order{Column: "title; DROP TABLE bookmarks"}})
		assert.Error(t, err)
	})
}

func TestSQLiteUpdates(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	c := seedCategory(t, s, "Old")
	other := seedCategory(t, s, "Other")
	b := seedBookmark(t, s, c.ID, "title", "x")

	t.Run("category patch", func(t *testing.T) {
		name := "New"
		var noDesc *string
		require.NoError(t, s.UpdateCategory(ctx, c.ID, domain.CategoryPatch{Name: &name, Description: &noDesc}))

		got, err := s.GetCategory(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "New", got.Name)
		assert.Nil(t, got.Description)
		assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	})

	t.Run("bookmark moves category and clears tags", func(t *testing.T) {
		var none []string
		require.NoError(t, s.UpdateBookmark(ctx, b.ID, domain.BookmarkPatch{CategoryID: &other.ID, Tags: &none}))

		got, err := s.GetBookmark(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.CategoryID)
		assert.Nil(t, got.Tags)
	})

	t.Run("missing rows", func(t *testing.T) {
		title := "x"
		err := s.UpdateBookmark(ctx, "missing", domain.BookmarkPatch{Title: &title})
		assert.True(t, domain.IsNotFound(err))

		err = s.UpdateCategory(ctx, "missing", domain.CategoryPatch{Name: &title})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("delete bookmark", func(t *testing.T) {
		require.NoError(t, s.DeleteBookmark(ctx, b.ID))
		_, err := s.GetBookmark(ctx, b.ID)
		assert.True(t, domain.IsNotFound(err))
	})
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	s := newStore(sqlx.NewDb(conn, "postgres"), postgresDialect)
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	s.newID = func() string { return "11111111-1111-1111-1111-111111111111" }
	return s, mock
}

func TestPostgresQueries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("get category", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT id, name, color, description, created_at, updated_at FROM categories WHERE id = \$1`).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(categoryColumns).
				AddRow("c1", "Dev", "#10B981", nil, now, now))

		c, err := s.GetCategory(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, "Dev", c.Name)
		assert.Nil(t, c.Description)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get category not found", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .* FROM categories WHERE id = \$1`).
			WithArgs("c404").
			WillReturnRows(sqlmock.NewRows(categoryColumns))

		_, err := s.GetCategory(ctx, "c404")
		assert.True(t, domain.IsNotFound(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert bookmark with array tags", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`INSERT INTO bookmarks \(id,title,url,description,favicon_url,category_id,tags,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9\)`).
			WithArgs("11111111-1111-1111-1111-111111111111", "Go", "https://go.dev", nil, nil, "c1", `{"a","b"}`, now, now).
			WillReturnResult(sqlmock.NewResult(0, 1))

		b, err := s.InsertBookmark(ctx, domain.Bookmark{Title: "Go", URL: "https://go.dev", CategoryID: "c1", Tags: []string{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, "11111111-1111-1111-1111-111111111111", b.ID)
		assert.Equal(t, now, b.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list bookmarks scans array tags", func(t *testing.T) {
		s, mock := newMockStore(t)
		cols := append(append([]string{}, bookmarkColumns...), "category_name", "category_color")
		mock.ExpectQuery(`SELECT b.id, .* FROM bookmarks b JOIN categories c ON c.id = b.category_id WHERE b.category_id = \$1 ORDER BY b.created_at DESC`).
			WithArgs("c1").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow("b1", "Go", "https://go.dev", nil, nil, "c1", []byte(`{x,"y z"}`), now, now, "Dev", "#3B82F6"))

		bms, err := s.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: "c1"})
		require.NoError(t, err)
		require.Len(t, bms, 1)
		assert.Equal(t, []string{"x", "y z"}, bms[0].Tags)
		assert.Equal(t, "Dev", bms[0].Category.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update category", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE categories SET name = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs("Renamed", now, "c1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		name := "Renamed"
		require.NoError(t, s.UpdateCategory(ctx, "c1", domain.CategoryPatch{Name: &name}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bulk delete by category", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM bookmarks WHERE category_id = \$1`).
			WithArgs("c1").
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := s.DeleteBookmarksByCategory(ctx, "c1")
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		s, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM bookmarks WHERE category_id = \$1`).
			WithArgs("c1").
			WillReturnError(fmt.Errorf("connection reset by peer"))
		mock.ExpectRollback()

		err := s.InTx(ctx, func(tx store.Gateway) error {
			_, err := tx.DeleteBookmarksByCategory(ctx, "c1")
			return err
		})
		assert.ErrorIs(t, err, domain.ErrConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		want      error
		retryable bool
	}{
		{"pq foreign key", &pq.Error{Code: "23503"}, domain.ErrForeignKey, false},
		{"pq unique", &pq.Error{Code: "23505"}, domain.ErrDuplicateKey, false},
		{"pq bad uuid", &pq.Error{Code: "22P02"}, domain.ErrNotFound, false},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), domain.ErrForeignKey, false},
		{"sqlite not null", errors.New("NOT NULL constraint failed: bookmarks.title"), domain.ErrNotNull, false},
		{"timeout", context.DeadlineExceeded, domain.ErrTimeout, true},
		{"refused", errors.New("dial tcp: connection refused"), domain.ErrConnection, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(tt.err, "insert", "bookmarks")
			assert.ErrorIs(t, err, tt.want)

			var se *domain.StoreError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.retryable, se.Retryable)
		})
	}

	assert.NoError(t, parseError(nil, "select", "categories"))
}

func TestTagListScan(t *testing.T) {
	tests := []struct {
		name string
		src  any
		want []string
	}{
		{"null", nil, nil},
		{"pg array", []byte(`{a,b,b}`), []string{"a", "b", "b"}},
		{"pg empty array", "{}", nil},
		{"json", `["react","ui"]`, []string{"react", "ui"}},
		{"json empty", `[]`, nil},
		{"blank", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tl tagList
			require.NoError(t, tl.Scan(tt.src))
			assert.Equal(t, tt.want, []string(tl))
		})
	}

	var tl tagList
	assert.Error(t, tl.Scan(42))
	assert.Error(t, tl.Scan("garbage"))
}
