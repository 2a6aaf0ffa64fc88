package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/skingford/book-web/internal/domain"
)

// parseError converts driver errors (postgres or sqlite) to *domain.StoreError.
func parseError(err error, op, table string) error {
	if err == nil {
		return nil
	}

	wrap := func(e error, retryable bool) error {
		return &domain.StoreError{Op: op, Table: table, Err: e, Retryable: retryable}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return wrap(domain.ErrNotFound, false)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(domain.ErrTimeout, true)
	}
	if errors.Is(err, context.Canceled) {
		return wrap(domain.ErrCanceled, false)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return wrap(domain.ErrDuplicateKey, false)
		case "23503":
			return wrap(domain.ErrForeignKey, false)
		case "23502":
			return wrap(domain.ErrNotNull, false)
		case "22P02":
			// invalid uuid text: no row can match it
			return wrap(domain.ErrNotFound, false)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate key value violates unique constraint"),
		strings.Contains(msg, "UNIQUE constraint failed"):
		return wrap(domain.ErrDuplicateKey, false)
	case strings.Contains(msg, "violates foreign key constraint"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return wrap(domain.ErrForeignKey, false)
	case strings.Contains(msg, "violates not-null constraint"),
		strings.Contains(msg, "NOT NULL constraint failed"):
		return wrap(domain.ErrNotNull, false)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "database is locked"):
		return wrap(domain.ErrConnection, true)
	}

	return wrap(err, false)
}
