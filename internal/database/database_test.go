package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatePQError(t *testing.T) {
	assert.NoError(t, translatePQError(nil))
	assert.ErrorIs(t, translatePQError(sql.ErrNoRows), ErrNoRows)
	assert.ErrorIs(t, translatePQError(&pq.Error{Code: "23505"}), ErrUniqueViolation)
	assert.ErrorIs(t, translatePQError(&pq.Error{Code: "23503"}), ErrForeignKeyViolation)

	other := errors.New("connection reset")
	assert.Equal(t, other, translatePQError(other))
}

func TestTranslatePgxError(t *testing.T) {
	assert.NoError(t, translatePgxError(nil))
	assert.ErrorIs(t, translatePgxError(pgx.ErrNoRows), ErrNoRows)
	assert.ErrorIs(t, translatePgxError(&pgconn.PgError{Code: "23505"}), ErrUniqueViolation)
	assert.ErrorIs(t, translatePgxError(&pgconn.PgError{Code: "23503"}), ErrForeignKeyViolation)
}

func TestSQLDB_WithTxCommits(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := NewSQLDB(raw)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO auth_identities`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = db.WithTx(context.Background(), func(tx Executor) error {
		n, err := tx.Exec(context.Background(), `INSERT INTO auth_identities (id) VALUES ($1)`, "x")
		assert.Equal(t, int64(1), n)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLDB_WithTxRollsBackOnError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := NewSQLDB(raw)

	mock.ExpectBegin()
	mock.ExpectRollback()

	failure := errors.New("profile insert failed")
	err = db.WithTx(context.Background(), func(tx Executor) error { return failure })
	assert.ErrorIs(t, err, failure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySchema_UsesEmbeddedScript(t *testing.T) {
	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer raw.Close()

	mock.ExpectExec(Schema()).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, ApplySchema(context.Background(), NewSQLDB(raw), ""))
	require.NoError(t, mock.ExpectationsWereMet())

	for _, table := range []string{"products", "sales", "promotions", "reports", "profiles", "auth_identities"} {
		assert.True(t, strings.Contains(Schema(), "CREATE TABLE IF NOT EXISTS "+table), table)
	}
}

func TestApplySchema_MissingFile(t *testing.T) {
	raw, _, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()

	err = ApplySchema(context.Background(), NewSQLDB(raw), "/nonexistent/schema.sql")
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	db, err := Open(context.Background(), "sqlite", "", PoolOptions{})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unknown storage backend")
}
