package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/skingford/book-web/internal/store"
)

const (
	// HistoryKey is the local-store key holding the JSON-encoded history.
	HistoryKey = "searchHistory"
	// DefaultHistoryLimit caps the number of remembered queries.
	DefaultHistoryLimit = 10
)

// History keeps the most recent executed queries, newest first, without duplicates.
type History struct {
	mu    sync.Mutex
	kv    store.KV
	limit int
}

func NewHistory(kv store.KV, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{kv: kv, limit: limit}
}

// List returns the stored history. A missing or unreadable entry reads as empty.
func (h *History) List(ctx context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Record pushes query to the front. Queries of one character or less after
// trimming are ignored. Returns the resulting history.
func (h *History) Record(ctx context.Context, query string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	h.mu.Lock()
	defer h.mu.Unlock()

	current, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(q) <= 1 {
		return current, nil
	}

	next := push(current, q, h.limit)
	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	if err := h.kv.Set(ctx, HistoryKey, string(data)); err != nil {
		return nil, err
	}
	return next, nil
}

// Clear removes the stored history.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kv.Remove(ctx, HistoryKey)
}

func (h *History) load(ctx context.Context) ([]string, error) {
	raw, ok, err := h.kv.Get(ctx, HistoryKey)
	if err != nil {
		return nil, err
	}
	out := []string{}
	if !ok {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		// corrupt entry is overwritten by the next Record
		return []string{}, nil
	}
	return out, nil
}

// push puts q first, drops its older copy and truncates to limit.
func push(history []string, q string, limit int) []string {
	next := make([]string, 0, limit)
	next = append(next, q)
	for _, h := range history {
		if len(next) == limit {
			break
		}
		if h != q {
			next = append(next, h)
		}
	}
	return next
}
