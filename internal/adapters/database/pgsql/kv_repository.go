package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/class_fund_app/internal/core/ports/repositories"
)

const (
	selectValueQuery = `SELECT value FROM kv_store WHERE key = $1;`

	// A single upsert statement, so the previous value survives any failure.
	upsertValueQuery = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;
	`
)

// KeyValueRepository stores values in the kv_store table.
type KeyValueRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewKeyValueRepository creates a new repository for key-value data.
// The repository takes ownership of db and closes it in Close.
func NewKeyValueRepository(db *sql.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db, now: time.Now}
}

// Get retrieves the value stored under key.
func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, selectValueQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set inserts or replaces the value stored under key.
func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, upsertValueQuery, key, string(value), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (r *KeyValueRepository) Close() error {
	return r.db.Close()
}

var _ portsrepo.KeyValueStore = (*KeyValueRepository)(nil)
