// Package db implements store.Gateway on top of sqlx, for SQLite and PostgreSQL.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/skingford/book-web/internal/store"
)

type Options struct {
	Driver       string // "sqlite" | "postgres"
	DSN          string
	MaxOpenConns int
}

// Store is a store.Gateway. A Store returned by Open owns the connection pool;
// the one handed to an InTx callback is bound to that transaction.
type Store struct {
	db    *sqlx.DB // nil inside a transaction
	q     sqlx.ExtContext
	d     dialect
	now   func() time.Time
	newID func() string
}

var _ store.Gateway = (*Store)(nil)

// Open connects, applies pragmas and creates the schema when missing.
func Open(ctx context.Context, opts Options) (*Store, error) {
	d, err := dialectFor(opts.Driver)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(d.driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if d.driver == DriverSQLite {
		// pragmas are per connection and :memory: databases are per connection too
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
	} else if opts.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(opts.MaxOpenConns)
	}

	for _, p := range d.pragmas {
		if _, err := conn.ExecContext(ctx, p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	s := newStore(conn, d)
	if err := s.Migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func newStore(conn *sqlx.DB, d dialect) *Store {
	return &Store{
		db:    conn,
		q:     conn,
		d:     d,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID: uuid.NewString,
	}
}

// Migrate creates tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.q.ExecContext(ctx, s.d.schema)
	return err
}

// Driver returns the engine name.
func (s *Store) Driver() string { return s.d.driver }

func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) InTx(ctx context.Context, fn func(store.Gateway) error) error {
	if s.db == nil {
		// already inside a transaction
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return parseError(err, "begin", "")
	}

	child := &Store{q: tx, d: s.d, now: s.now, newID: s.newID}
	if err := fn(child); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return parseError(err, "commit", "")
	}
	return nil
}
