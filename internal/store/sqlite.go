package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/vinabatch/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL keeps the history server readable while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, epoch, num_mols, batch_size, pdb_id, aurora, experiment,
		                   state, results_path, errors_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Epoch, run.NumMols, run.BatchSize, run.PDBID, run.Aurora, run.Experiment,
		run.State.String(), run.ResultsPath, run.ErrorsPath,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	return err
}

// FinishRun stores the terminal state, the tally, and the completion time.
func (s *SQLiteStore) FinishRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "update", "table", "runs", "id", run.ID, "state", run.State)

	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET state = ?, total = ?, success = ?,
		        failed_scrubbing = ?, failed_preparation = ?, failed_docking = ?,
		        completed_at = ?
		 WHERE id = ?`,
		run.State.String(),
		run.Tally.Total, run.Tally.Success,
		run.Tally.FailedScrub, run.Tally.FailedPrep, run.Tally.FailedDock,
		run.CompletedAt.Format(time.RFC3339Nano),
		run.ID,
	)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, epoch, num_mols, batch_size, pdb_id, aurora, experiment, state,
		        total, success, failed_scrubbing, failed_preparation, failed_docking,
		        results_path, errors_path, created_at, completed_at
		 FROM runs WHERE id = ?`, id,
	)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "runs", "limit", opts.Limit, "offset", opts.Offset)
	opts.Clamp()

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, epoch, num_mols, batch_size, pdb_id, aurora, experiment, state,
		        total, success, failed_scrubbing, failed_preparation, failed_docking,
		        results_path, errors_path, created_at, completed_at
		 FROM runs ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

func (s *SQLiteStore) AddOutcome(ctx context.Context, o model.LigandOutcome) error {
	s.logger.Debug("sql", "op", "insert", "table", "outcomes", "run_id", o.RunID, "ligand", o.Ligand)

	var affinity any
	if o.Success {
		affinity = o.Affinity
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (run_id, ligand, success, affinity, stage, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		o.RunID, o.Ligand, boolToInt(o.Success), affinity, o.Stage.String(), o.Reason,
	)
	return err
}

func (s *SQLiteStore) ListOutcomes(ctx context.Context, runID string) ([]*model.LigandOutcome, error) {
	s.logger.Debug("sql", "op", "list", "table", "outcomes", "run_id", runID)

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, ligand, success, affinity, stage, reason
		 FROM outcomes WHERE run_id = ? ORDER BY rowid`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []*model.LigandOutcome
	for rows.Next() {
		var o model.LigandOutcome
		var success int
		var affinity sql.NullFloat64
		var stage string
		if err := rows.Scan(&o.RunID, &o.Ligand, &success, &affinity, &stage, &o.Reason); err != nil {
			return nil, err
		}
		o.Success = success != 0
		if affinity.Valid {
			o.Affinity = affinity.Float64
		}
		o.Stage = model.Stage(stage)
		outcomes = append(outcomes, &o)
	}
	return outcomes, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*model.Run, error) {
	var run model.Run
	var state, createdAt string
	var completedAt sql.NullString

	err := row.Scan(&run.ID, &run.Epoch, &run.NumMols, &run.BatchSize,
		&run.PDBID, &run.Aurora, &run.Experiment, &state,
		&run.Tally.Total, &run.Tally.Success,
		&run.Tally.FailedScrub, &run.Tally.FailedPrep, &run.Tally.FailedDock,
		&run.ResultsPath, &run.ErrorsPath, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}

	run.State = model.RunState(state)
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	if completedAt.Valid {
		run.CompletedAt, _ = time.Parse(time.RFC3339Nano, completedAt.String)
	}
	return &run, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
