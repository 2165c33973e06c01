package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS rhythms (
			id                     TEXT PRIMARY KEY,
			name                   TEXT NOT NULL UNIQUE,
			goal_value             INTEGER NOT NULL,
			goal_unit              TEXT NOT NULL,
			timezone               TEXT NOT NULL DEFAULT '',
			chain_types            TEXT NOT NULL,
			weekly_target_minutes  INTEGER NOT NULL DEFAULT 0,
			monthly_target_minutes INTEGER NOT NULL DEFAULT 0,
			created_at             TEXT NOT NULL,
			updated_at             TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS entries (
			id               TEXT PRIMARY KEY,
			rhythm_id        TEXT NOT NULL REFERENCES rhythms(id) ON DELETE CASCADE,
			occurred_at      TEXT NOT NULL,
			timezone         TEXT NOT NULL DEFAULT '',
			duration_seconds INTEGER NOT NULL DEFAULT 0,
			note             TEXT,
			created_at       TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_entries_rhythm ON entries(rhythm_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_rhythm_time ON entries(rhythm_id, occurred_at)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
