package db

import "database/sql"

// MigrateUp creates the cache schema if it does not exist yet.
func MigrateUp(database *sql.DB) error {
	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS cache_entries (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    expires_at TIMESTAMPTZ
)`); err != nil {
		return err
	}

	// The sweeper deletes by expires_at; without this index it would scan
	// the whole table on every run.
	if _, err := database.Exec(`
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires_at
    ON cache_entries(expires_at)
    WHERE expires_at IS NOT NULL`); err != nil {
		return err
	}

	return nil
}

// MigrateDown drops the cache schema.
// Use with caution: this deletes every cached entry.
func MigrateDown(database *sql.DB) error {
	_, err := database.Exec(`DROP TABLE IF EXISTS cache_entries`)
	return err
}
