package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrNotNull      = errors.New("not null constraint violation")
	ErrConnection   = errors.New("database connection failed")
	ErrTimeout      = errors.New("operation timeout")
	ErrCanceled     = errors.New("operation canceled")
	ErrDeclined     = errors.New("confirmation declined")
	ErrBusy         = errors.New("submission already in progress")
)

// StoreError is any failure reported by the relational store.
type StoreError struct {
	Op        string // insert, update, delete, select...
	Table     string
	Err       error
	Retryable bool
}

func (e *StoreError) Error() string {
	parts := []string{"store: " + e.Op}
	if e.Table != "" {
		parts = append(parts, "table="+e.Table)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field failure of one submission.
// It is produced before any store call.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Field returns the message for name, or "" when that field is valid.
func (e *ValidationError) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// Add appends a field failure.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// CascadeError reports that the bookmarks of a category could not be deleted.
// The category itself was left in place.
type CascadeError struct {
	CategoryID string
	Err        error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade delete of category %s aborted: %v", e.CategoryID, e.Err)
}

func (e *CascadeError) Unwrap() error { return e.Err }
