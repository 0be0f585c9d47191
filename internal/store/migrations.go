package store

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the run ledger.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                 TEXT PRIMARY KEY,
		epoch              TEXT NOT NULL,
		num_mols           TEXT NOT NULL,
		batch_size         TEXT NOT NULL,
		pdb_id             TEXT NOT NULL,
		aurora             TEXT NOT NULL DEFAULT '',
		experiment         TEXT NOT NULL,
		state              TEXT NOT NULL DEFAULT 'RUNNING',
		total              INTEGER NOT NULL DEFAULT 0,
		success            INTEGER NOT NULL DEFAULT 0,
		failed_scrubbing   INTEGER NOT NULL DEFAULT 0,
		failed_preparation INTEGER NOT NULL DEFAULT 0,
		failed_docking     INTEGER NOT NULL DEFAULT 0,
		results_path       TEXT NOT NULL DEFAULT '',
		errors_path        TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		completed_at       TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS outcomes (
		run_id   TEXT NOT NULL,
		ligand   TEXT NOT NULL,
		success  INTEGER NOT NULL DEFAULT 0,
		affinity REAL,
		stage    TEXT NOT NULL DEFAULT '',
		reason   TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (run_id) REFERENCES runs(id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_state ON runs(state)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_pdb_id ON runs(pdb_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
}

// migrate applies every schema statement in order.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
