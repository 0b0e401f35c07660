package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sdtech_backend/pkg/utils"

	"github.com/lib/pq" // PostgreSQL driver
)

// sqlConn is satisfied by *sql.DB and *sql.Tx.
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// SQLDB adapts a database/sql pool opened with lib/pq.
type SQLDB struct {
	db *sql.DB
}

// OpenPostgres opens and pings a direct PostgreSQL connection pool.
func OpenPostgres(ctx context.Context, dsn string, opts PoolOptions) (*SQLDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"backend": BackendPostgres})
	return &SQLDB{db: db}, nil
}

// NewSQLDB wraps an already opened pool. Tests use it with sqlmock.
func NewSQLDB(db *sql.DB) *SQLDB {
	return &SQLDB{db: db}
}

func (s *SQLDB) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return sqlExecutor{conn: s.db}.QueryRow(ctx, query, args...)
}

func (s *SQLDB) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return sqlExecutor{conn: s.db}.Query(ctx, query, args...)
}

func (s *SQLDB) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return sqlExecutor{conn: s.db}.Exec(ctx, query, args...)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (s *SQLDB) WithTx(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", translatePQError(err))
	}
	defer tx.Rollback()

	if err := fn(sqlExecutor{conn: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", translatePQError(err))
	}
	return nil
}

func (s *SQLDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLDB) Backend() string {
	return BackendPostgres
}

func (s *SQLDB) Close() error {
	return s.db.Close()
}

type sqlExecutor struct {
	conn sqlConn
}

func (e sqlExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return sqlRow{row: e.conn.QueryRowContext(ctx, query, args...)}
}

func (e sqlExecutor) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := e.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translatePQError(err)
	}
	return rows, nil
}

func (e sqlExecutor) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	result, err := e.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translatePQError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return affected, nil
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...interface{}) error {
	return translatePQError(r.row.Scan(dest...))
}

func translatePQError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrUniqueViolation, pqErr.Message, pqErr.Constraint)
		case "foreign_key_violation":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrForeignKeyViolation, pqErr.Message, pqErr.Constraint)
		}
	}
	return err
}
