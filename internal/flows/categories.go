package flows

import (
	"context"
	"fmt"
	"strings"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/store"
	"github.com/skingford/book-web/internal/validate"
)

const CategoriesPath = "/categories"

// CategoryPath is where a category's bookmarks are listed.
func CategoryPath(id string) string {
	return CategoriesPath + "/" + id
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=50"`
	Color       string `json:"color"`
	Description string `json:"description" validate:"max=200"`
}

func (in CategoryInput) normalized() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

// CategoryInputFrom pre-fills an edit form.
func CategoryInputFrom(c domain.Category) CategoryInput {
	in := CategoryInput{Name: c.Name, Color: c.Color}
	if c.Description != nil {
		in.Description = *c.Description
	}
	return in
}

type Categories struct {
	gw  store.Gateway
	v   *validate.Validator
	log logger.Logger
}

func NewCategories(gw store.Gateway, v *validate.Validator, log logger.Logger) *Categories {
	return &Categories{gw: gw, v: v, log: log}
}

// List returns every category, newest first, with its bookmark count.
func (c *Categories) List(ctx context.Context) ([]domain.CategoryWithCount, error) {
	return c.gw.ListCategoriesWithCount(ctx)
}

// Options lists categories alphabetically, as offered by bookmark forms.
func (c *Categories) Options(ctx context.Context) ([]domain.Category, error) {
	return c.gw.ListCategories(ctx, store.OrderByName)
}

func (c *Categories) Get(ctx context.Context, id string) (domain.Category, error) {
	return c.gw.GetCategory(ctx, id)
}

// Detail loads a category with its bookmarks, newest first.
func (c *Categories) Detail(ctx context.Context, id string) (domain.CategoryWithBookmarks, error) {
	cat, err := c.gw.GetCategory(ctx, id)
	if err != nil {
		return domain.CategoryWithBookmarks{}, err
	}

	rows, err := c.gw.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: id, Order: store.OrderNewest})
	if err != nil {
		return domain.CategoryWithBookmarks{}, err
	}

	out := domain.CategoryWithBookmarks{Category: cat, Bookmarks: make([]domain.Bookmark, 0, len(rows))}
	for _, r := range rows {
		out.Bookmarks = append(out.Bookmarks, r.Bookmark)
	}
	return out, nil
}

func (c *Categories) Create(ctx context.Context, f *Form, in CategoryInput) State {
	in = in.normalized()

	s := f.submit(ctx,
		func() error { return c.v.Struct(in) },
		func(ctx context.Context) (Success, error) {
			color := in.Color
			if color == "" {
				color = domain.DefaultColor
			}
			created, err := c.gw.InsertCategory(ctx, domain.Category{
				Name:        in.Name,
				Color:       color,
				Description: domain.OptionalText(in.Description),
			})
			if err != nil {
				return Success{}, err
			}
			c.log.Info("category created",
				logger.String("id", created.ID),
				logger.String("name", created.Name))
			return Success{Location: CategoriesPath, ID: created.ID}, nil
		})

	logFailure(c.log, "create category", s)
	return s
}

func (c *Categories) Update(ctx context.Context, f *Form, id string, in CategoryInput) State {
	in = in.normalized()

	s := f.submit(ctx,
		func() error { return c.v.Struct(in) },
		func(ctx context.Context) (Success, error) {
			desc := domain.OptionalText(in.Description)
			patch := domain.CategoryPatch{Name: &in.Name, Description: &desc}
			if in.Color != "" {
				patch.Color = &in.Color
			}
			if err := c.gw.UpdateCategory(ctx, id, patch); err != nil {
				return Success{}, err
			}
			c.log.Info("category updated", logger.String("id", id))
			return Success{Location: CategoriesPath, ID: id}, nil
		})

	logFailure(c.log, "update category", s)
	return s
}

// Delete asks for confirmation naming the category, then removes its
// bookmarks and the category in one transaction. When the bookmarks cannot be
// removed the category is kept and a *domain.CascadeError is reported.
func (c *Categories) Delete(ctx context.Context, f *Form, id string, confirm Confirmer) State {
	s := f.submit(ctx,
		func() error { return nil },
		func(ctx context.Context) (Success, error) {
			cat, err := c.gw.GetCategory(ctx, id)
			if err != nil {
				return Success{}, err
			}

			prompt := fmt.Sprintf("Delete category %q and all of its bookmarks?", cat.Name)
			ok, err := confirm.Confirm(ctx, prompt)
			if err != nil {
				return Success{}, err
			}
			if !ok {
				return Success{}, domain.ErrDeclined
			}

			var removed int64
			err = c.gw.InTx(ctx, func(tx store.Gateway) error {
				n, err := tx.DeleteBookmarksByCategory(ctx, id)
				if err != nil {
					return &domain.CascadeError{CategoryID: id, Err: err}
				}
				removed = n
				return tx.DeleteCategory(ctx, id)
			})
			if err != nil {
				return Success{}, err
			}

			c.log.Info("category deleted",
				logger.String("id", id),
				logger.String("name", cat.Name),
				logger.Int64("bookmarks_removed", removed))
			return Success{Location: CategoriesPath, ID: id}, nil
		})

	logFailure(c.log, "delete category", s)
	return s
}

// logFailure records store-side failures. Validation and declined prompts are
// user outcomes and stay out of the error log.
func logFailure(log logger.Logger, op string, s State) {
	f, ok := s.(Failed)
	if !ok || f.Err == nil {
		return
	}
	switch f.Message {
	case MsgInvalid, MsgDeclined, MsgNotFound:
		log.Debug(op+" rejected", logger.String("reason", f.Message), logger.Error(f.Err))
	default:
		log.Error(op+" failed", logger.Error(f.Err))
	}
}
