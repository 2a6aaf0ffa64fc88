package domain

import "time"

// Bookmark is a saved link owned by exactly one category.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier (UUID), assigned at creation.
	ID string `db:"id" json:"id"`

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// Title is the display name. Non-empty, at most 100 characters.
	Title string `db:"title" json:"title"`

	// URL is the absolute target URL.
	// Example: https://react.dev/learn
	URL string `db:"url" json:"url"`

	// Description is optional free text, at most 500 characters.
	Description *string `db:"description" json:"description"`

	// FaviconURL is an optional icon URL.
	FaviconURL *string `db:"favicon_url" json:"favicon_url"`

	// Tags keeps insertion order and duplicates.
	// A nil slice is stored as NULL and reads back as nil.
	Tags []string `db:"tags" json:"tags"`

	// ─────────────────────────────
	// Ownership
	// ─────────────────────────────

	// CategoryID references categories.id. The store enforces it.
	CategoryID string `db:"category_id" json:"category_id"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CategoryRef is the slice of a category carried by BookmarkWithCategory.
type CategoryRef struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

// BookmarkWithCategory is the read-only projection used by listings and search.
// It is never persisted.
type BookmarkWithCategory struct {
	Bookmark
	Category CategoryRef `db:"category" json:"category"`
}

// BookmarkPatch carries the fields an edit may change. Nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	URL         *string
	Description **string
	FaviconURL  **string
	CategoryID  *string
	Tags        *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p BookmarkPatch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Description == nil &&
		p.FaviconURL == nil && p.CategoryID == nil && p.Tags == nil
}
