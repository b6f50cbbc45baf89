package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresKV persists key-value pairs in a single kv_store table.
type PostgresKV struct {
	db *sqlx.DB
}

// NewPostgresKV constructs the store.
func NewPostgresKV(db *sqlx.DB) *PostgresKV {
	return &PostgresKV{db: db}
}

// EnsureSchema creates the kv_store table when it does not exist yet.
func (s *PostgresKV) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS kv_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure kv_store schema: %w", err)
	}
	return nil
}

// Get fetches the value stored under key.
func (s *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_store WHERE key = $1`
	var value string
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get kv %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value under key.
func (s *PostgresKV) Set(ctx context.Context, key, value string) error {
	const query = `INSERT INTO kv_store (key, value, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (key)
DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("set kv %s: %w", key, err)
	}
	return nil
}
