package flows

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/metadata"
	"github.com/skingford/book-web/internal/store"
	"github.com/skingford/book-web/internal/validate"
)

type BookmarkInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	URL         string `json:"url" validate:"required,url"`
	Description string `json:"description" validate:"max=500"`
	CategoryID  string `json:"category_id" validate:"required"`
	Tags        string `json:"tags"` // comma separated
	FaviconURL  string `json:"favicon_url" validate:"omitempty,url"`
}

func (in BookmarkInput) normalized() BookmarkInput {
	in.Title = strings.TrimSpace(in.Title)
	in.URL = strings.TrimSpace(in.URL)
	in.Description = strings.TrimSpace(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.FaviconURL = strings.TrimSpace(in.FaviconURL)
	return in
}

// BookmarkInputFrom pre-fills an edit form.
func BookmarkInputFrom(b domain.Bookmark) BookmarkInput {
	in := BookmarkInput{
		Title:      b.Title,
		URL:        b.URL,
		CategoryID: b.CategoryID,
		Tags:       domain.JoinTags(b.Tags),
	}
	if b.Description != nil {
		in.Description = *b.Description
	}
	if b.FaviconURL != nil {
		in.FaviconURL = *b.FaviconURL
	}
	return in
}

// BookmarkForm is what a create or edit form is rendered from.
type BookmarkForm struct {
	Categories []domain.Category `json:"categories"`
	Input      BookmarkInput     `json:"input"`
	Bookmark   *domain.Bookmark  `json:"bookmark,omitempty"`
}

// Suggester proposes a title and icon for a URL. It never fails.
type Suggester interface {
	Suggest(ctx context.Context, rawURL string) metadata.Suggestion
}

type Bookmarks struct {
	gw      store.Gateway
	v       *validate.Validator
	log     logger.Logger
	suggest Suggester
}

func NewBookmarks(gw store.Gateway, v *validate.Validator, log logger.Logger, suggest Suggester) *Bookmarks {
	return &Bookmarks{gw: gw, v: v, log: log, suggest: suggest}
}

// List returns bookmarks with their category, newest first.
func (b *Bookmarks) List(ctx context.Context, categoryID string) ([]domain.BookmarkWithCategory, error) {
	return b.gw.ListBookmarks(ctx, store.BookmarkFilter{CategoryID: categoryID, Order: store.OrderNewest})
}

func (b *Bookmarks) Get(ctx context.Context, id string) (domain.Bookmark, error) {
	return b.gw.GetBookmark(ctx, id)
}

// NewForm prepares the create form. The requested category is preselected
// when it exists, otherwise the first category by name.
func (b *Bookmarks) NewForm(ctx context.Context, preselect string) (BookmarkForm, error) {
	cats, err := b.gw.ListCategories(ctx, store.OrderByName)
	if err != nil {
		return BookmarkForm{}, err
	}

	form := BookmarkForm{Categories: cats}
	if cats == nil {
		form.Categories = []domain.Category{}
	}
	for _, c := range cats {
		if c.ID == preselect {
			form.Input.CategoryID = c.ID
			return form, nil
		}
	}
	if len(cats) > 0 {
		form.Input.CategoryID = cats[0].ID
	}
	return form, nil
}

// LoadForEdit fetches the bookmark and the category list concurrently.
// Both must succeed.
func (b *Bookmarks) LoadForEdit(ctx context.Context, id string) (BookmarkForm, error) {
	var (
		bm   domain.Bookmark
		cats []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bm, err = b.gw.GetBookmark(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = b.gw.ListCategories(gctx, store.OrderByName)
		return err
	})
	if err := g.Wait(); err != nil {
		return BookmarkForm{}, err
	}

	if cats == nil {
		cats = []domain.Category{}
	}
	return BookmarkForm{Categories: cats, Input: BookmarkInputFrom(bm), Bookmark: &bm}, nil
}

func (b *Bookmarks) Create(ctx context.Context, f *Form, in BookmarkInput) State {
	in = in.normalized()

	s := f.submit(ctx,
		func() error { return b.v.Struct(in) },
		func(ctx context.Context) (Success, error) {
			created, err := b.gw.InsertBookmark(ctx, domain.Bookmark{
				Title:       in.Title,
				URL:         in.URL,
				Description: domain.OptionalText(in.Description),
				FaviconURL:  domain.OptionalText(in.FaviconURL),
				CategoryID:  in.CategoryID,
				Tags:        domain.ParseTags(in.Tags),
			})
			if err != nil {
				return Success{}, err
			}
			b.log.Info("bookmark created",
				logger.String("id", created.ID),
				logger.String("category", created.CategoryID))
			return Success{Location: CategoryPath(created.CategoryID), ID: created.ID}, nil
		})

	logFailure(b.log, "create bookmark", s)
	return s
}

// Update rewrites every editable field and navigates to the (possibly new) category.
func (b *Bookmarks) Update(ctx context.Context, f *Form, id string, in BookmarkInput) State {
	in = in.normalized()

	s := f.submit(ctx,
		func() error { return b.v.Struct(in) },
		func(ctx context.Context) (Success, error) {
			desc := domain.OptionalText(in.Description)
			favicon := domain.OptionalText(in.FaviconURL)
			tags := domain.ParseTags(in.Tags)
			patch := domain.BookmarkPatch{
				Title:       &in.Title,
				URL:         &in.URL,
				Description: &desc,
				FaviconURL:  &favicon,
				CategoryID:  &in.CategoryID,
				Tags:        &tags,
			}
			if err := b.gw.UpdateBookmark(ctx, id, patch); err != nil {
				return Success{}, err
			}
			b.log.Info("bookmark updated", logger.String("id", id))
			return Success{Location: CategoryPath(in.CategoryID), ID: id}, nil
		})

	logFailure(b.log, "update bookmark", s)
	return s
}

// Delete asks for confirmation naming the bookmark, deletes it and navigates
// to its category.
func (b *Bookmarks) Delete(ctx context.Context, f *Form, id string, confirm Confirmer) State {
	s := f.submit(ctx,
		func() error { return nil },
		func(ctx context.Context) (Success, error) {
			bm, err := b.gw.GetBookmark(ctx, id)
			if err != nil {
				return Success{}, err
			}

			ok, err := confirm.Confirm(ctx, fmt.Sprintf("Delete bookmark %q?", bm.Title))
			if err != nil {
				return Success{}, err
			}
			if !ok {
				return Success{}, domain.ErrDeclined
			}

			if err := b.gw.DeleteBookmark(ctx, id); err != nil {
				return Success{}, err
			}
			b.log.Info("bookmark deleted", logger.String("id", id))
			return Success{Location: CategoryPath(bm.CategoryID), ID: id}, nil
		})

	logFailure(b.log, "delete bookmark", s)
	return s
}

// SuggestTitle proposes a title (and icon) for a URL typed in the form.
// Failures yield an empty suggestion.
func (b *Bookmarks) SuggestTitle(ctx context.Context, rawURL string) metadata.Suggestion {
	if b.suggest == nil {
		return metadata.FromURL(rawURL)
	}
	return b.suggest.Suggest(ctx, rawURL)
}
