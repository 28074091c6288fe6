// Package store implements the persistence layer over database/sql.
//
// Functions take the database handle as an argument so requests share no
// global state; multi-write operations (create-with-log, move) run inside
// a single transaction. The SQL sticks to positional $n placeholders,
// app-side UUIDs and Go-supplied timestamps so the same statements run on
// Postgres (pgx) in production and on in-memory SQLite in tests.
package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Sentinel errors mapped to the API error taxonomy by the handlers.
var (
	// ErrNotFound means a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a uniqueness constraint was violated.
	ErrConflict = errors.New("already exists")
	// ErrSameLocation means a move targeted the item's current location.
	ErrSameLocation = errors.New("item is already in this location")
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isUniqueViolation sniffs driver-specific unique constraint errors.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
