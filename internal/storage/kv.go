package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned by Set when a value exceeds the storage budget.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is a local string key-value store, the durable side of the plan store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Compile-time check: *DB satisfies KV.
var _ KV = (*DB)(nil)

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.QueryRowContext(ctx,
		`SELECT value FROM kv_entries WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key. Values larger than the configured budget are
// rejected with ErrQuotaExceeded and leave the previous value in place.
func (d *DB) Set(ctx context.Context, key, value string) error {
	if d.maxValueBytes > 0 && len(value) > d.maxValueBytes {
		return fmt.Errorf("writing %q (%d bytes, limit %d): %w", key, len(value), d.maxValueBytes, ErrQuotaExceeded)
	}
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
			SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
