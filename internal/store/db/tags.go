package db

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// tagList reads the tags column of either engine:
// NULL, a postgres array literal ("{a,b}") or a JSON array ("["a","b"]").
type tagList []string

func (t *tagList) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("tags: unsupported type %T", src)
	}

	raw = strings.TrimSpace(raw)
	var out []string
	switch {
	case raw == "":
	case strings.HasPrefix(raw, "{"):
		var arr pq.StringArray
		if err := arr.Scan(raw); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
		out = arr
	case strings.HasPrefix(raw, "["):
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return fmt.Errorf("tags: %w", err)
		}
	default:
		return fmt.Errorf("tags: unrecognized value %q", raw)
	}

	if len(out) == 0 {
		out = nil
	}
	*t = out
	return nil
}
