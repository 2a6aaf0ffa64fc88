// Package storetest provides a testify mock of store.Gateway.
package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/store"
)

type Gateway struct {
	mock.Mock
}

var _ store.Gateway = (*Gateway)(nil)

func (m *Gateway) ListCategories(ctx context.Context, order store.Order) ([]domain.Category, error) {
	args := m.Called(ctx, order)
	out, _ := args.Get(0).([]domain.Category)
	return out, args.Error(1)
}

func (m *Gateway) ListCategoriesWithCount(ctx context.Context) ([]domain.CategoryWithCount, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]domain.CategoryWithCount)
	return out, args.Error(1)
}

func (m *Gateway) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(domain.Category)
	return out, args.Error(1)
}

func (m *Gateway) InsertCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	args := m.Called(ctx, c)
	out, _ := args.Get(0).(domain.Category)
	return out, args.Error(1)
}

func (m *Gateway) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *Gateway) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Gateway) ListBookmarks(ctx context.Context, filter store.BookmarkFilter) ([]domain.BookmarkWithCategory, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]domain.BookmarkWithCategory)
	return out, args.Error(1)
}

func (m *Gateway) GetBookmark(ctx context.Context, id string) (domain.Bookmark, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(domain.Bookmark)
	return out, args.Error(1)
}

func (m *Gateway) InsertBookmark(ctx context.Context, b domain.Bookmark) (domain.Bookmark, error) {
	args := m.Called(ctx, b)
	out, _ := args.Get(0).(domain.Bookmark)
	return out, args.Error(1)
}

func (m *Gateway) UpdateBookmark(ctx context.Context, id string, patch domain.BookmarkPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *Gateway) DeleteBookmark(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Gateway) DeleteBookmarksByCategory(ctx context.Context, categoryID string) (int64, error) {
	args := m.Called(ctx, categoryID)
	n, _ := args.Get(0).(int64)
	return n, args.Error(1)
}

// InTx records the call and runs fn against the mock itself.
// Return an error from the expectation to simulate a failed BEGIN.
func (m *Gateway) InTx(ctx context.Context, fn func(store.Gateway) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *Gateway) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
