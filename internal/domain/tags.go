package domain

import "strings"

// ParseTags splits a comma-separated input into trimmed, non-empty tags.
// Order and duplicates are preserved. Returns nil when nothing remains.
func ParseTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse used to pre-fill edit forms.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// OptionalText trims s and returns nil when the result is empty.
func OptionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
