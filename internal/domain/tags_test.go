package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"duplicates kept", "a, b, b", []string{"a", "b", "b"}},
		{"empties dropped", " ,a,, ,b ", []string{"a", "b"}},
		{"empty input", "", nil},
		{"only separators", " , ,", nil},
		{"order kept", "go,rust,c", []string{"go", "rust", "c"}},
		{"inner spaces kept", "web dev, ui", []string{"web dev", "ui"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOptionalText(t *testing.T) {
	if got := OptionalText("   "); got != nil {
		t.Errorf("OptionalText(blank) = %q, want nil", *got)
	}
	got := OptionalText("  hello ")
	if got == nil || *got != "hello" {
		t.Errorf("OptionalText = %v, want hello", got)
	}
}

func TestJoinTags(t *testing.T) {
	if got := JoinTags([]string{"a", "b"}); got != "a, b" {
		t.Errorf("JoinTags = %q", got)
	}
	if got := JoinTags(nil); got != "" {
		t.Errorf("JoinTags(nil) = %q", got)
	}
}

func TestDefaultColor(t *testing.T) {
	if DefaultColor != "#3B82F6" {
		t.Errorf("DefaultColor = %s", DefaultColor)
	}
	if len(PresetColors) != 10 {
		t.Errorf("expected 10 preset colors, got %d", len(PresetColors))
	}
}

func TestErrors(t *testing.T) {
	t.Run("store error unwraps", func(t *testing.T) {
		err := &StoreError{Op: "select", Table: "categories", Err: ErrNotFound}
		if !IsNotFound(err) {
			t.Error("expected IsNotFound")
		}
		if err.Error() != "store: select: table=categories: record not found" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("cascade error unwraps", func(t *testing.T) {
		inner := &StoreError{Op: "delete", Table: "bookmarks", Err: ErrConnection}
		err := error(&CascadeError{CategoryID: "c1", Err: inner})
		var se *StoreError
		if !errors.As(err, &se) || !errors.Is(err, ErrConnection) {
			t.Error("cascade error should expose the store error")
		}
	})

	t.Run("validation error", func(t *testing.T) {
		v := &ValidationError{}
		if v.OrNil() != nil {
			t.Fatal("empty validation error should be nil")
		}
		v.Add("title", "title is required")
		if v.OrNil() == nil {
			t.Fatal("expected error")
		}
		if v.Field("title") != "title is required" || v.Field("url") != "" {
			t.Errorf("unexpected field lookup: %+v", v.Fields)
		}
	})
}
