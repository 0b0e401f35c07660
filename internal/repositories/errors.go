package repositories

import (
	"errors"
	"fmt"

	"sdtech_backend/internal/database"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError is returned for unexpected database errors.
	// It can be used to wrap more specific driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert/update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// scanner is an interface satisfied by database.Row and database.Rows.
// This allows for generic scanning helpers.
type scanner interface {
	Scan(dest ...interface{}) error
}

// wrapErr maps adapter errors onto the repository sentinels.
func wrapErr(err error, action string) error {
	switch {
	case errors.Is(err, database.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, database.ErrUniqueViolation):
		return fmt.Errorf("%w: %s: %v", ErrDuplicateKey, action, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrDatabaseError, action, err)
	}
}
