package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "runs: one row per computed CogSNet run",
		SQL: `
CREATE TABLE runs (
    id                TEXT PRIMARY KEY,
    created_at        INTEGER NOT NULL,
    source            TEXT,

    -- Run parameters
    forgetting        TEXT NOT NULL CHECK (forgetting IN ('linear', 'power', 'exponential')),
    snapshot_interval INTEGER NOT NULL,
    edge_lifetime     INTEGER NOT NULL,
    mu                REAL NOT NULL,
    theta             REAL NOT NULL,
    units             INTEGER NOT NULL,

    -- Result shape
    node_count        INTEGER NOT NULL,
    event_count       INTEGER NOT NULL,
    snapshot_count    INTEGER NOT NULL
);

CREATE INDEX idx_runs_created ON runs(created_at DESC);
`,
	},
	{
		Version:     2,
		Description: "snapshots + edges: materialized network state per run",
		SQL: `
CREATE TABLE snapshots (
    id            INTEGER PRIMARY KEY,
    run_id        TEXT NOT NULL,
    idx           INTEGER NOT NULL,
    snapshot_time INTEGER NOT NULL,

    UNIQUE (run_id, idx),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE edges (
    snapshot_id INTEGER NOT NULL,
    src         INTEGER NOT NULL,
    dst         INTEGER NOT NULL,
    weight      REAL NOT NULL,

    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX idx_snapshots_run  ON snapshots(run_id);
CREATE INDEX idx_edges_snapshot ON edges(snapshot_id);
`,
	},
}

// migrate applies any pending migrations inside transactions.
func (db *DB) migrate() error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (unixepoch() * 1000)
		)
	`); err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	current, err := db.SchemaVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO schema_versions (version, description) VALUES (?, ?)`,
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}
	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_versions`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}
