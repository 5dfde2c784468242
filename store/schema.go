package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id           TEXT PRIMARY KEY,
    kind         TEXT NOT NULL CHECK (kind IN ('scale', 'compare', 'fault')),
    created_at   TEXT NOT NULL,
    started_at   TEXT,
    completed_at TEXT,
    max_pool     INTEGER NOT NULL,
    trials       INTEGER NOT NULL,
    seed         INTEGER NOT NULL,
    all_passed   INTEGER NOT NULL DEFAULT 0,
    -- planned pool sizes; below the stored point count when a sweep was interrupted
    total        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- One row per pool size of a scaling sweep or fault test.
CREATE TABLE IF NOT EXISTS fault_points (
    run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    pool          INTEGER NOT NULL,
    k             INTEGER NOT NULL,
    v             INTEGER NOT NULL,
    amplitude     REAL NOT NULL,
    avg_steps     REAL NOT NULL,
    min_steps     INTEGER NOT NULL,
    max_steps     INTEGER NOT NULL,
    avg_coherence REAL NOT NULL,
    success_rate  REAL NOT NULL,
    trials        INTEGER NOT NULL,
    test_time_sec REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, pool)
);

-- One row per pool size of a comparison sweep.
CREATE TABLE IF NOT EXISTS compare_points (
    run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    pool            INTEGER NOT NULL,
    seed_size       INTEGER NOT NULL,
    geo_steps       REAL NOT NULL,
    geo_coherence   REAL NOT NULL,
    geo_corrections REAL NOT NULL,
    geo_success     REAL NOT NULL,
    cor_steps       REAL NOT NULL,
    cor_coherence   REAL NOT NULL,
    cor_corrections REAL NOT NULL,
    cor_success     REAL NOT NULL,
    ratio           REAL NOT NULL,
    PRIMARY KEY (run_id, pool)
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// migrations[v] upgrades a database from version v to v+1.
var migrations = map[int]string{
	1: `ALTER TABLE runs ADD COLUMN total INTEGER NOT NULL DEFAULT 0;
	    UPDATE runs SET total = (SELECT COUNT(*) FROM fault_points f WHERE f.run_id = runs.id) +
	                            (SELECT COUNT(*) FROM compare_points c WHERE c.run_id = runs.id);`,
}

// InitSchema creates all tables on a fresh database and migrates an older
// one up to SchemaVersion.
func InitSchema(ctx context.Context, db *sql.DB) error {
	version, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema v%d is newer than supported v%d", version, SchemaVersion)
	}
	if version < SchemaVersion {
		if err := migrateSchema(ctx, db, version); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// getSchemaVersion returns the current schema version from the database.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// migrateSchema applies migrations from currentVersion to SchemaVersion in
// one transaction.
func migrateSchema(ctx context.Context, db *sql.DB, currentVersion int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for v := currentVersion; v < SchemaVersion; v++ {
		stmt, ok := migrations[v]
		if !ok {
			return fmt.Errorf("no migration from v%d", v)
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrating v%d: %w", v, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
			v+1); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}

	return tx.Commit()
}
