// Package search filters and orders the bookmark corpus for a free-text query.
package search

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/skingford/book-web/internal/domain"
)

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortTitle     SortBy = "title"
)

// ParseSortBy accepts "", relevance, date and title. Empty means relevance.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortRelevance:
		return SortRelevance, nil
	case SortDate:
		return SortDate, nil
	case SortTitle:
		return SortTitle, nil
	default:
		return "", fmt.Errorf("unknown sort %q (want relevance, date or title)", s)
	}
}

type Options struct {
	CategoryID string // empty = every category
	SortBy     SortBy
}

// Filter returns the corpus entries matching query, ordered by opts.SortBy.
// A blank query yields an empty result. The corpus is not modified.
func Filter(query string, corpus []domain.BookmarkWithCategory, opts Options) []domain.BookmarkWithCategory {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []domain.BookmarkWithCategory{}
	}

	out := make([]domain.BookmarkWithCategory, 0)
	for _, b := range corpus {
		if opts.CategoryID != "" && b.Category.ID != opts.CategoryID {
			continue
		}
		if matches(b, needle) {
			out = append(out, b)
		}
	}

	Sort(out, needle, opts.SortBy)
	return out
}

// matches tests title, description, url, each tag, then the category name.
func matches(b domain.BookmarkWithCategory, needle string) bool {
	if contains(b.Title, needle) {
		return true
	}
	if b.Description != nil && contains(*b.Description, needle) {
		return true
	}
	if contains(b.URL, needle) {
		return true
	}
	for _, tag := range b.Tags {
		if contains(tag, needle) {
			return true
		}
	}
	return contains(b.Category.Name, needle)
}

func contains(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

// Sort orders results in place. needle must already be lower-cased; it only
// matters for relevance.
func Sort(results []domain.BookmarkWithCategory, needle string, by SortBy) {
	switch by {
	case SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		})
	case SortTitle:
		col := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(results, func(i, j int) bool {
			if c := col.CompareString(results[i].Title, results[j].Title); c != 0 {
				return c < 0
			}
			return results[i].Title < results[j].Title
		})
	default:
		// stable partition: title matches first, original order otherwise
		sort.SliceStable(results, func(i, j int) bool {
			return contains(results[i].Title, needle) && !contains(results[j].Title, needle)
		})
	}
}
