package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cogsnet/cogsnet/internal/cogsnet"
)

// Run is a persisted CogSNet computation: the parameters it was computed
// with plus the shape of its result.
type Run struct {
	ID               string  `json:"id"`
	CreatedAt        int64   `json:"created_at"`
	Source           string  `json:"source,omitempty"`
	Forgetting       string  `json:"forgetting"`
	SnapshotInterval int64   `json:"snapshot_interval"`
	EdgeLifetime     int64   `json:"edge_lifetime"`
	Mu               float64 `json:"mu"`
	Theta            float64 `json:"theta"`
	Units            int64   `json:"units"`
	NodeCount        int     `json:"node_count"`
	EventCount       int     `json:"event_count"`
	SnapshotCount    int     `json:"snapshot_count"`
}

// SaveRun stores a run and all its snapshots in one transaction. It assigns
// run.ID and run.CreatedAt. The edges table grows by nodes² rows per
// snapshot, so the inserts go through a single prepared statement.
func (db *DB) SaveRun(run *Run, snapshots []cogsnet.Snapshot) error {
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UnixMilli()
	run.SnapshotCount = len(snapshots)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs (id, created_at, source, forgetting, snapshot_interval,
			edge_lifetime, mu, theta, units, node_count, event_count, snapshot_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt, run.Source, run.Forgetting, run.SnapshotInterval,
		run.EdgeLifetime, run.Mu, run.Theta, run.Units,
		run.NodeCount, run.EventCount, run.SnapshotCount); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	edgeStmt, err := tx.Prepare(`INSERT INTO edges (snapshot_id, src, dst, weight) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for idx, snap := range snapshots {
		res, err := tx.Exec(`
			INSERT INTO snapshots (run_id, idx, snapshot_time) VALUES (?, ?, ?)
		`, run.ID, idx, snap.Time)
		if err != nil {
			return fmt.Errorf("insert snapshot %d: %w", idx, err)
		}
		snapID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("snapshot %d id: %w", idx, err)
		}

		for _, e := range snap.Edges {
			if _, err := edgeStmt.Exec(snapID, e.Src, e.Dst, e.Weight); err != nil {
				return fmt.Errorf("insert edge for snapshot %d: %w", idx, err)
			}
		}
	}

	return tx.Commit()
}

const runColumns = `id, created_at, source, forgetting, snapshot_interval,
	edge_lifetime, mu, theta, units, node_count, event_count, snapshot_count`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.Forgetting, &r.SnapshotInterval,
		&r.EdgeLifetime, &r.Mu, &r.Theta, &r.Units,
		&r.NodeCount, &r.EventCount, &r.SnapshotCount)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns all stored runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	rows, err := db.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *r)
	}
	return runs, rows.Err()
}

// GetRun returns one run by ID, or nil if it does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// SnapshotTimes returns the snapshot timestamps of a run in index order.
func (db *DB) SnapshotTimes(runID string) ([]int64, error) {
	rows, err := db.Query(`
		SELECT snapshot_time FROM snapshots WHERE run_id = ? ORDER BY idx
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("snapshot times: %w", err)
	}
	defer rows.Close()

	var times []int64
	for rows.Next() {
		var t int64
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan snapshot time: %w", err)
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

// Snapshot returns one stored snapshot of a run by index, or nil if the run
// or the index does not exist.
func (db *DB) Snapshot(runID string, idx int) (*cogsnet.Snapshot, error) {
	var snapID int64
	var snap cogsnet.Snapshot
	err := db.QueryRow(`
		SELECT id, snapshot_time FROM snapshots WHERE run_id = ? AND idx = ?
	`, runID, idx).Scan(&snapID, &snap.Time)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	rows, err := db.Query(`
		SELECT src, dst, weight FROM edges WHERE snapshot_id = ? ORDER BY rowid
	`, snapID)
	if err != nil {
		return nil, fmt.Errorf("snapshot edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e cogsnet.Edge
		if err := rows.Scan(&e.Src, &e.Dst, &e.Weight); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		snap.Edges = append(snap.Edges, e)
	}
	return &snap, rows.Err()
}

// DeleteRun removes a run together with its snapshots and edges. Children
// are deleted explicitly so the cascade does not depend on the foreign_keys
// pragma being set on every pooled connection. It reports whether a run was
// actually deleted.
func (db *DB) DeleteRun(id string) (bool, error) {
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin delete run: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		DELETE FROM edges WHERE snapshot_id IN (SELECT id FROM snapshots WHERE run_id = ?)
	`, id); err != nil {
		return false, fmt.Errorf("delete edges: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM snapshots WHERE run_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete snapshots: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete run: %w", err)
	}
	return n > 0, nil
}
