package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sdtech_backend/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxConn is satisfied by *pgxpool.Pool and pgx.Tx.
type pgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HostedDB talks to the Postgres instance behind the hosted (Supabase) service.
type HostedDB struct {
	pool *pgxpool.Pool
}

// OpenHosted connects a pgx pool to the hosted database URL.
// Statements run over the simple protocol so the Supabase connection pooler
// (transaction mode) does not trip over server-side prepared statements.
func OpenHosted(ctx context.Context, databaseURL string, opts PoolOptions) (*HostedDB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing hosted database url: %w", err)
	}
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	if opts.MaxOpenConns > 0 {
		cfg.MaxConns = int32(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		cfg.MinConns = int32(min(opts.MaxIdleConns, opts.MaxOpenConns))
	}
	if opts.ConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.ConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect hosted database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("hosted database ping failed: %w", err)
	}

	utils.LogInfo("Successfully connected to the database", map[string]interface{}{"backend": BackendHosted})
	return &HostedDB{pool: pool}, nil
}

func (h *HostedDB) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return pgxExecutor{conn: h.pool}.QueryRow(ctx, query, args...)
}

func (h *HostedDB) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	return pgxExecutor{conn: h.pool}.Query(ctx, query, args...)
}

func (h *HostedDB) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	return pgxExecutor{conn: h.pool}.Exec(ctx, query, args...)
}

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (h *HostedDB) WithTx(ctx context.Context, fn func(tx Executor) error) error {
	tx, err := h.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", translatePgxError(err))
	}
	defer tx.Rollback(ctx)

	if err := fn(pgxExecutor{conn: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", translatePgxError(err))
	}
	return nil
}

func (h *HostedDB) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

func (h *HostedDB) Backend() string {
	return BackendHosted
}

func (h *HostedDB) Close() error {
	h.pool.Close()
	return nil
}

type pgxExecutor struct {
	conn pgxConn
}

func (e pgxExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) Row {
	return pgxRow{row: e.conn.QueryRow(ctx, query, args...)}
}

func (e pgxExecutor) Query(ctx context.Context, query string, args ...interface{}) (Rows, error) {
	rows, err := e.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgxError(err)
	}
	return pgxRows{Rows: rows}, nil
}

func (e pgxExecutor) Exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	tag, err := e.conn.Exec(ctx, query, args...)
	if err != nil {
		return 0, translatePgxError(err)
	}
	return tag.RowsAffected(), nil
}

type pgxRow struct {
	row pgx.Row
}

func (r pgxRow) Scan(dest ...interface{}) error {
	return translatePgxError(r.row.Scan(dest...))
}

// pgxRows gives pgx.Rows the error-returning Close of *sql.Rows.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return nil
}

func translatePgxError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrUniqueViolation, pgErr.Message, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s (constraint: %s)", ErrForeignKeyViolation, pgErr.Message, pgErr.ConstraintName)
		}
	}
	return err
}
