package database

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"sdtech_backend/pkg/utils"
)

// Backend names reported by DB.Backend.
const (
	BackendPostgres = "postgres"
	BackendHosted   = "hosted"
)

var (
	// ErrNoRows is returned by Row.Scan when the query matched nothing, whatever the driver.
	ErrNoRows = errors.New("no rows in result set")

	// ErrUniqueViolation wraps driver errors for SQLSTATE 23505.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrForeignKeyViolation wraps driver errors for SQLSTATE 23503.
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
)

//go:embed schema.sql
var embeddedSchema string

// Row is satisfied by the single-row results of both drivers.
type Row interface {
	Scan(dest ...interface{}) error
}

// Rows is the iteration surface shared by *sql.Rows and wrapped pgx rows.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close() error
}

// Executor runs parameterized statements. It is satisfied by a pool and by a transaction,
// so repository methods work inside or outside WithTx.
type Executor interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) (int64, error)
}

// DB is the process-wide connection pool, constructed once in main and injected.
type DB interface {
	Executor
	WithTx(ctx context.Context, fn func(tx Executor) error) error
	Ping(ctx context.Context) error
	Backend() string
	Close() error
}

// PoolOptions tunes the connection pool of either backend.
type PoolOptions struct {
	MaxOpenConns int
	MaxIdleConns int
	ConnLifetime time.Duration
}

// Schema returns the embedded DDL for the application tables.
func Schema() string {
	return embeddedSchema
}

// ApplySchema executes the schema file at schemaPath, or the embedded schema when the path is empty.
func ApplySchema(ctx context.Context, db DB, schemaPath string) error {
	script := embeddedSchema
	if schemaPath != "" {
		content, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
		}
		script = string(content)
	}

	if _, err := db.Exec(ctx, script); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	utils.LogInfo("Database schema applied successfully", map[string]interface{}{"backend": db.Backend(), "path": schemaPath})
	return nil
}

// Open connects the backend named by backend: BackendPostgres uses lib/pq, BackendHosted uses pgx.
func Open(ctx context.Context, backend, dsn string, opts PoolOptions) (DB, error) {
	switch backend {
	case BackendPostgres:
		db, err := OpenPostgres(ctx, dsn, opts)
		if err != nil {
			return nil, err
		}
		return db, nil
	case BackendHosted:
		db, err := OpenHosted(ctx, dsn, opts)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", backend)
}
