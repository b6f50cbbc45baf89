package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresKVMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestPostgresKVEnsureSchema(t *testing.T) {
	db, mock, cleanup := newPostgresKVMock(t)
	defer cleanup()

	store := NewPostgresKV(db)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv_store").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresKVGet(t *testing.T) {
	db, mock, cleanup := newPostgresKVMock(t)
	defer cleanup()

	store := NewPostgresKV(db)
	rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":1}]`)
	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("gpa-calc:classes").
		WillReturnRows(rows)

	value, found, err := store.Get(context.Background(), "gpa-calc:classes")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":1}]`, value)
}

func TestPostgresKVGetMissingKey(t *testing.T) {
	db, mock, cleanup := newPostgresKVMock(t)
	defer cleanup()

	store := NewPostgresKV(db)
	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("gpa-calc:classes").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	value, found, err := store.Get(context.Background(), "gpa-calc:classes")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, value)
}

func TestPostgresKVGetError(t *testing.T) {
	db, mock, cleanup := newPostgresKVMock(t)
	defer cleanup()

	store := NewPostgresKV(db)
	mock.ExpectQuery("SELECT value FROM kv_store").
		WithArgs("gpa-calc:classes").
		WillReturnError(errors.New("connection reset"))

	_, found, err := store.Get(context.Background(), "gpa-calc:classes")
	require.Error(t, err)
	assert.False(t, found)
}

func TestPostgresKVSet(t *testing.T) {
	db, mock, cleanup := newPostgresKVMock(t)
	defer cleanup()

	store := NewPostgresKV(db)
	mock.ExpectExec("INSERT INTO kv_store").
		WithArgs("gpa-calc:classes", "[]", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Set(context.Background(), "gpa-calc:classes", "[]"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
