package db

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/store"
)

const tableBookmarks = "bookmarks"

var bookmarkColumns = []string{
	"id", "title", "url", "description", "favicon_url", "category_id", "tags", "created_at", "updated_at",
}

type bookmarkRow struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	URL         string    `db:"url"`
	Description *string   `db:"description"`
	FaviconURL  *string   `db:"favicon_url"`
	CategoryID  string    `db:"category_id"`
	Tags        tagList   `db:"tags"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r bookmarkRow) toDomain() domain.Bookmark {
	return domain.Bookmark{
		ID:          r.ID,
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		FaviconURL:  r.FaviconURL,
		CategoryID:  r.CategoryID,
		Tags:        []string(r.Tags),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type bookmarkJoinRow struct {
	bookmarkRow
	CategoryName  string `db:"category_name"`
	CategoryColor string `db:"category_color"`
}

// ListBookmarks returns bookmarks joined with their category.
func (s *Store) ListBookmarks(ctx context.Context, filter store.BookmarkFilter) ([]domain.BookmarkWithCategory, error) {
	order := filter.Order
	if order.Column == "" {
		order = store.OrderNewest
	}
	if err := order.Validate(tableBookmarks); err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(bookmarkColumns)+2)
	for _, c := range bookmarkColumns {
		cols = append(cols, "b."+c)
	}
	cols = append(cols, "c.name AS category_name", "c.color AS category_color")

	q := sq.Select(cols...).
		From("bookmarks b").
		Join("categories c ON c.id = b.category_id").
		OrderBy("b." + order.Column + " " + order.Direction()).
		PlaceholderFormat(s.d.placeholder)
	if filter.CategoryID != "" {
		q = q.Where(sq.Eq{"b.category_id": filter.CategoryID})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var rows []bookmarkJoinRow
	if err := sqlx.SelectContext(ctx, s.q, &rows, query, args...); err != nil {
		return nil, parseError(err, "select", tableBookmarks)
	}

	out := make([]domain.BookmarkWithCategory, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.BookmarkWithCategory{
			Bookmark: r.toDomain(),
			Category: domain.CategoryRef{ID: r.CategoryID, Name: r.CategoryName, Color: r.CategoryColor},
		})
	}
	return out, nil
}

func (s *Store) GetBookmark(ctx context.Context, id string) (domain.Bookmark, error) {
	query, args, err := sq.Select(bookmarkColumns...).
		From(tableBookmarks).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return domain.Bookmark{}, err
	}

	var r bookmarkRow
	if err := sqlx.GetContext(ctx, s.q, &r, query, args...); err != nil {
		return domain.Bookmark{}, parseError(err, "select", tableBookmarks)
	}
	return r.toDomain(), nil
}

// InsertBookmark assigns id and timestamps. An empty tag list is stored as NULL.
func (s *Store) InsertBookmark(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	if b.ID == "" {
		b.ID = s.newID()
	}
	if len(b.Tags) == 0 {
		b.Tags = nil
	}
	now := s.now()
	b.CreatedAt, b.UpdatedAt = now, now

	tags, err := s.d.tagsArg(b.Tags)
	if err != nil {
		return domain.Bookmark{}, err
	}

	query, args, err := sq.Insert(tableBookmarks).
		Columns(bookmarkColumns...).
		Values(b.ID, b.Title, b.URL, b.Description, b.FaviconURL, b.CategoryID, tags, b.CreatedAt, b.UpdatedAt).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return domain.Bookmark{}, err
	}

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return domain.Bookmark{}, parseError(err, "insert", tableBookmarks)
	}
	return b, nil
}

func (s *Store) UpdateBookmark(ctx context.Context, id string, patch domain.BookmarkPatch) error {
	set := map[string]any{"updated_at": s.now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.URL != nil {
		set["url"] = *patch.URL
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.FaviconURL != nil {
		set["favicon_url"] = *patch.FaviconURL
	}
	if patch.CategoryID != nil {
		set["category_id"] = *patch.CategoryID
	}
	if patch.Tags != nil {
		tags, err := s.d.tagsArg(*patch.Tags)
		if err != nil {
			return err
		}
		set["tags"] = tags
	}

	query, args, err := sq.Update(tableBookmarks).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return err
	}

	return s.execOne(ctx, "update", tableBookmarks, query, args)
}

func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	query, args, err := sq.Delete(tableBookmarks).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return parseError(err, "delete", tableBookmarks)
	}
	return nil
}

// DeleteBookmarksByCategory bulk-deletes every bookmark of a category and
// returns how many rows went away.
func (s *Store) DeleteBookmarksByCategory(ctx context.Context, categoryID string) (int64, error) {
	query, args, err := sq.Delete(tableBookmarks).
		Where(sq.Eq{"category_id": categoryID}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, parseError(err, "delete", tableBookmarks)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, parseError(err, "delete", tableBookmarks)
	}
	return n, nil
}
