package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore is a Store implementation over database/sql. It is used with the
// pgx stdlib driver in the shipped binaries, but the SQL is plain enough to
// run against anything database/sql can open.
type SQLStore struct{ db *sql.DB }

// NewSQLStore creates a SQL-backed store on an already-opened database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Get returns the value for the key, or ErrKeyNotFound. Entries past their
// backend-side expiry are treated as absent; the sweeper removes the rows.
func (s *SQLStore) Get(ctx context.Context, key string) (string, error) {
	const query = `
SELECT value FROM cache_entries
WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return value, nil
}

// Set upserts the value for the key. A ttl of zero stores the row without
// backend-side expiry.
func (s *SQLStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	const query = `
INSERT INTO cache_entries (key, value, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
`

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	if _, err := s.db.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("Set: ExecContext: %w", err)
	}
	return nil
}

// Delete removes the key. Absent keys are ignored.
func (s *SQLStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM cache_entries WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("Delete: ExecContext: %w", err)
	}
	return nil
}

// DeleteByPrefix removes every key with the given prefix.
func (s *SQLStore) DeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	const query = `DELETE FROM cache_entries WHERE key LIKE $1 || '%'`

	res, err := s.db.ExecContext(ctx, query, prefix)
	if err != nil {
		return 0, fmt.Errorf("DeleteByPrefix: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByPrefix: RowsAffected: %w", err)
	}
	return int(n), nil
}

// DeleteExpired removes rows past their expiry.
func (s *SQLStore) DeleteExpired(ctx context.Context) (int, error) {
	const query = `DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= NOW()`

	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("DeleteExpired: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteExpired: RowsAffected: %w", err)
	}
	return int(n), nil
}
