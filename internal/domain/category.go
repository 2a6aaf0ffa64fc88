package domain

import "time"

// Category groups bookmarks under a name and a color.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Color       string    `db:"color" json:"color"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CategoryWithCount is a category listing row with the number of bookmarks it owns.
type CategoryWithCount struct {
	Category
	BookmarkCount int `db:"bookmark_count" json:"bookmark_count"`
}

// CategoryWithBookmarks is the category detail view.
type CategoryWithBookmarks struct {
	Category
	Bookmarks []Bookmark `json:"bookmarks"`
}

// CategoryPatch carries the fields a category edit may change.
type CategoryPatch struct {
	Name        *string
	Color       *string
	Description **string
}

func (p CategoryPatch) IsEmpty() bool {
	return p.Name == nil && p.Color == nil && p.Description == nil
}

// PresetColors is the palette offered when creating a category.
var PresetColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#06B6D4", // cyan
	"#84CC16", // lime
	"#F97316", // orange
	"#EC4899", // pink
	"#6B7280", // gray
}

// DefaultColor is used when a category is created without a color.
var DefaultColor = PresetColors[0]

// Ref returns the projection carried by BookmarkWithCategory.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Color: c.Color}
}
