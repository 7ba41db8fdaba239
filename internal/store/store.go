// Package store issues all catalog queries. Every value reaching query text
// travels as a bound parameter; nothing is concatenated into SQL.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors callers are expected to branch on with errors.Is.
var (
	// ErrNotFound means an id lookup or update matched no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateName means a write would violate a name uniqueness
	// constraint.
	ErrDuplicateName = errors.New("name already exists")

	// ErrHasDependents means a delete was blocked because items still
	// reference the record.
	ErrHasDependents = errors.New("record has dependent items")

	// ErrInvalidReference means a written foreign key points at a record
	// that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// wrapWriteErr translates SQLite constraint failures into sentinel errors so
// handlers never parse driver messages.
func wrapWriteErr(op string, err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%s: %w", op, ErrDuplicateName)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}
