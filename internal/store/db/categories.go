package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/store"
)

const tableCategories = "categories"

var categoryColumns = []string{"id", "name", "color", "description", "created_at", "updated_at"}

func (s *Store) ListCategories(ctx context.Context, order store.Order) ([]domain.Category, error) {
	if err := order.Validate(tableCategories); err != nil {
		return nil, err
	}

	q := sq.Select(categoryColumns...).
		From(tableCategories).
		PlaceholderFormat(s.d.placeholder)
	if order.Column != "" {
		q = q.OrderBy(order.Column + " " + order.Direction())
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	var out []domain.Category
	if err := sqlx.SelectContext(ctx, s.q, &out, query, args...); err != nil {
		return nil, parseError(err, "select", tableCategories)
	}
	return out, nil
}

// ListCategoriesWithCount lists categories newest first with the number of bookmarks each owns.
func (s *Store) ListCategoriesWithCount(ctx context.Context) ([]domain.CategoryWithCount, error) {
	query, args, err := sq.Select(
		"c.id", "c.name", "c.color", "c.description", "c.created_at", "c.updated_at",
		"COUNT(b.id) AS bookmark_count",
	).
		From("categories c").
		LeftJoin("bookmarks b ON b.category_id = c.id").
		GroupBy("c.id", "c.name", "c.color", "c.description", "c.created_at", "c.updated_at").
		OrderBy("c.created_at DESC").
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return nil, err
	}

	var out []domain.CategoryWithCount
	if err := sqlx.SelectContext(ctx, s.q, &out, query, args...); err != nil {
		return nil, parseError(err, "select", tableCategories)
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	query, args, err := sq.Select(categoryColumns...).
		From(tableCategories).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return domain.Category{}, err
	}

	var c domain.Category
	if err := sqlx.GetContext(ctx, s.q, &c, query, args...); err != nil {
		return domain.Category{}, parseError(err, "select", tableCategories)
	}
	return c, nil
}

// InsertCategory assigns id and timestamps, and the default color when none is given.
func (s *Store) InsertCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.Color == "" {
		c.Color = domain.DefaultColor
	}
	now := s.now()
	c.CreatedAt, c.UpdatedAt = now, now

	query, args, err := sq.Insert(tableCategories).
		Columns(categoryColumns...).
		Values(c.ID, c.Name, c.Color, c.Description, c.CreatedAt, c.UpdatedAt).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return domain.Category{}, err
	}

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return domain.Category{}, parseError(err, "insert", tableCategories)
	}
	return c, nil
}

func (s *Store) UpdateCategory(ctx context.Context, id string, patch domain.CategoryPatch) error {
	set := map[string]any{"updated_at": s.now()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}

	query, args, err := sq.Update(tableCategories).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return err
	}

	return s.execOne(ctx, "update", tableCategories, query, args)
}

// DeleteCategory removes a single category row. Its bookmarks must be gone first:
// the foreign key rejects the delete otherwise.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	query, args, err := sq.Delete(tableCategories).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(s.d.placeholder).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.q.ExecContext(ctx, query, args...); err != nil {
		return parseError(err, "delete", tableCategories)
	}
	return nil
}

// execOne runs a statement that must touch exactly one row.
func (s *Store) execOne(ctx context.Context, op, table, query string, args []any) error {
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return parseError(err, op, table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return parseError(err, op, table)
	}
	if n == 0 {
		return &domain.StoreError{Op: op, Table: table, Err: domain.ErrNotFound}
	}
	return nil
}
