package store

import (
	"context"
	"fmt"

	"github.com/skingford/book-web/internal/domain"
)

// Gateway is the only path to the relational store.
// Implementations never retry: failures come back as *domain.StoreError.
type Gateway interface {
	ListCategories(ctx context.Context, order Order) ([]domain.Category, error)
	ListCategoriesWithCount(ctx context.Context) ([]domain.CategoryWithCount, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	InsertCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) error
	DeleteCategory(ctx context.Context, id string) error

	ListBookmarks(ctx context.Context, filter BookmarkFilter) ([]domain.BookmarkWithCategory, error)
	GetBookmark(ctx context.Context, id string) (domain.Bookmark, error)
	InsertBookmark(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error)
	UpdateBookmark(ctx context.Context, id string, patch domain.BookmarkPatch) error
	DeleteBookmark(ctx context.Context, id string) error
	DeleteBookmarksByCategory(ctx context.Context, categoryID string) (int64, error)

	// InTx runs fn against a gateway bound to a single transaction.
	// The transaction commits when fn returns nil.
	InTx(ctx context.Context, fn func(Gateway) error) error

	Ping(ctx context.Context) error
}

// Order selects the sort column of a listing.
type Order struct {
	Column    string
	Ascending bool
}

var (
	// OrderNewest lists rows by creation time, most recent first.
	OrderNewest = Order{Column: "created_at"}
	// OrderByName lists rows alphabetically.
	OrderByName = Order{Column: "name", Ascending: true}
)

var orderable = map[string]map[string]bool{
	"categories": {"name": true, "created_at": true, "updated_at": true},
	"bookmarks":  {"title": true, "url": true, "created_at": true, "updated_at": true},
}

// Validate rejects columns that cannot be used to sort table.
func (o Order) Validate(table string) error {
	if o.Column == "" {
		return nil
	}
	if !orderable[table][o.Column] {
		return fmt.Errorf("cannot order %s by %q", table, o.Column)
	}
	return nil
}

// Direction returns the SQL keyword for o.
func (o Order) Direction() string {
	if o.Ascending {
		return "ASC"
	}
	return "DESC"
}

// BookmarkFilter narrows a bookmark listing.
type BookmarkFilter struct {
	CategoryID string // empty = all categories
	Order      Order  // zero value = newest first
}

// KV is a keyed local store holding small string values.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
