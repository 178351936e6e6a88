package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps every map in the kv_entries table as JSON text. A
// commit runs in a single transaction.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open database handle. The schema is created by
// database.Migrate.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the value stored under key.
func (s *PostgresStore) Get(ctx context.Context, m Map, key string) ([]byte, bool, error) {
	const q = `SELECT value FROM kv_entries WHERE map_name = $1 AND key = $2`

	var value string
	if err := s.db.GetContext(ctx, &value, q, string(m), key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Commit upserts every write inside one transaction.
func (s *PostgresStore) Commit(ctx context.Context, writes []Write) (err error) {
	const q = `
        INSERT INTO kv_entries (map_name, key, value)
        VALUES ($1, $2, $3)
        ON CONFLICT (map_name, key) DO UPDATE SET
            value = EXCLUDED.value,
            updated_at = NOW()`

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PreparexContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, w := range writes {
		if _, err = stmt.ExecContext(ctx, string(w.Map), w.Key, string(w.Value)); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", w.Map, w.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
