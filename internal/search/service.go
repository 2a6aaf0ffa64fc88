package search

import (
	"context"
	"strings"
	"time"

	"github.com/skingford/book-web/internal/domain"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/store"
)

// DefaultPopular seeds the suggestion list shown before anything is typed.
var DefaultPopular = []string{"React", "JavaScript", "TypeScript", "Next.js", "Tailwind", "Supabase"}

// Hit is a matching bookmark with its highlighted title and description.
type Hit struct {
	domain.BookmarkWithCategory
	TitleHighlight       []Segment `json:"title_highlight"`
	DescriptionHighlight []Segment `json:"description_highlight,omitempty"`
}

type Result struct {
	Query string `json:"query"`
	Total int    `json:"total"` // matches before Limit is applied
	Hits  []Hit  `json:"hits"`
	Took  string `json:"took"`
}

type ServiceOptions struct {
	Limit   int      // display cap, 0 = unlimited
	Popular []string // nil = DefaultPopular
}

// Service runs searches against the store and remembers executed queries.
type Service struct {
	gw      store.Gateway
	history *History
	log     logger.Logger
	limit   int
	popular []string
}

func NewService(gw store.Gateway, history *History, log logger.Logger, opts ServiceOptions) *Service {
	popular := opts.Popular
	if popular == nil {
		popular = DefaultPopular
	}
	return &Service{
		gw:      gw,
		history: history,
		log:     log,
		limit:   opts.Limit,
		popular: popular,
	}
}

// Search loads the corpus, filters it and records the query in the history.
// A blank query returns an empty result without touching the store.
func (s *Service) Search(ctx context.Context, query string, opts Options) (Result, error) {
	start := time.Now()
	res := Result{Query: query, Hits: []Hit{}}

	if strings.TrimSpace(query) == "" {
		return res, nil
	}

	corpus, err := s.gw.ListBookmarks(ctx, store.BookmarkFilter{Order: store.OrderNewest})
	if err != nil {
		return res, err
	}

	matched := Filter(query, corpus, opts)
	res.Total = len(matched)
	if s.limit > 0 && len(matched) > s.limit {
		matched = matched[:s.limit]
	}

	for _, b := range matched {
		hit := Hit{BookmarkWithCategory: b, TitleHighlight: Highlight(b.Title, query)}
		if b.Description != nil {
			hit.DescriptionHighlight = Highlight(*b.Description, query)
		}
		res.Hits = append(res.Hits, hit)
	}

	if s.history != nil {
		if _, err := s.history.Record(ctx, query); err != nil {
			s.log.Warn("failed to record search history", logger.Error(err))
		}
	}

	res.Took = time.Since(start).String()
	s.log.Debug("search executed",
		logger.String("query", query),
		logger.String("category", opts.CategoryID),
		logger.String("sort", string(opts.SortBy)),
		logger.Int("total", res.Total))
	return res, nil
}

func (s *Service) History(ctx context.Context) ([]string, error) {
	if s.history == nil {
		return []string{}, nil
	}
	return s.history.List(ctx)
}

func (s *Service) ClearHistory(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	return s.history.Clear(ctx)
}

func (s *Service) Popular() []string {
	out := make([]string, len(s.popular))
	copy(out, s.popular)
	return out
}
