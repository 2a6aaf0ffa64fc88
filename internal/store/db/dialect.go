package db

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// dialect holds what differs between the supported engines.
type dialect struct {
	driver      string
	placeholder sq.PlaceholderFormat
	nativeArray bool // tags column is TEXT[] instead of JSON text
	schema      string
	pragmas     []string
}

var postgresDialect = dialect{
	driver:      DriverPostgres,
	placeholder: sq.Dollar,
	nativeArray: true,
	schema: `
	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#3B82F6',
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS bookmarks (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		favicon_url TEXT,
		category_id UUID NOT NULL REFERENCES categories(id),
		tags TEXT[],
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS bookmarks_category_id_idx ON bookmarks(category_id);
	`,
}

var sqliteDialect = dialect{
	driver:      DriverSQLite,
	placeholder: sq.Question,
	schema: `
	CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '#3B82F6',
		description TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE TABLE IF NOT EXISTS bookmarks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		favicon_url TEXT,
		category_id TEXT NOT NULL REFERENCES categories(id),
		tags TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS bookmarks_category_id_idx ON bookmarks(category_id);
	`,
	pragmas: []string{
		"PRAGMA foreign_keys = ON;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	},
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite, "":
		return sqliteDialect, nil
	case DriverPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// tagsArg encodes tags for the tags column. Empty lists are stored as NULL.
func (d dialect) tagsArg(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	if d.nativeArray {
		return pq.Array(tags), nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}
