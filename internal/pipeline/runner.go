package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/receptor"
	"github.com/me/vinabatch/internal/tools"
	"github.com/me/vinabatch/internal/workspace"
	"github.com/me/vinabatch/pkg/model"
)

// Ledger is the optional persistence hook for run history. The CSV and log
// artifacts remain the reporting contract; the ledger only supplements them.
type Ledger interface {
	CreateRun(ctx context.Context, run *model.Run) error
	AddOutcome(ctx context.Context, o model.LigandOutcome) error
	FinishRun(ctx context.Context, run *model.Run) error
}

// Runner executes a full batch docking run: receptor resolution, workspace
// setup, the one-time receptor preparation gate, the sequential per-ligand
// loop, and final aggregation.
type Runner struct {
	Logger *slog.Logger
	Tools  config.Tools
	Root   string
	Ledger Ledger // may be nil
}

// Summary is the aggregate result of a completed run.
type Summary struct {
	RunID     string
	Tally     model.RunTally
	Workspace workspace.Workspace
}

// Run processes every ligand in the run's input directory. It returns a
// non-nil Summary whenever per-ligand processing happened at all, alongside
// model.ErrNoSuccessfulDockings when every ligand failed. Fatal conditions
// (invalid selector, receptor preparation failure, no ligands) return
// before or without per-ligand processing.
func (r *Runner) Run(ctx context.Context, params config.RunParams) (*Summary, error) {
	log := r.Logger.With("component", "runner")

	// Resolve before any side effect: an invalid selector must leave no
	// directories or files behind.
	target, err := receptor.Resolve(params.PDBID, params.Aurora)
	if err != nil {
		return nil, err
	}

	ws := workspace.New(r.Root, params, target)
	if err := ws.Init(); err != nil {
		return nil, err
	}
	log.Info("workspace ready", "base", ws.BaseDir, "receptor", target.PDBID)

	run := &model.Run{
		ID:          "run_" + uuid.New().String()[:8],
		Epoch:       params.Epoch,
		NumMols:     params.NumMols,
		BatchSize:   params.BatchSize,
		PDBID:       target.PDBID,
		Aurora:      params.Aurora,
		Experiment:  params.Experiment,
		State:       model.RunStateRunning,
		ResultsPath: ws.ResultsPath,
		ErrorsPath:  ws.ErrorLogPath,
		CreatedAt:   time.Now().UTC(),
	}
	if r.Ledger != nil {
		if err := r.Ledger.CreateRun(ctx, run); err != nil {
			log.Warn("ledger unavailable", "error", err)
		}
	}

	if err := r.prepareReceptor(ctx, ws, target); err != nil {
		r.finish(ctx, run, model.RunStateFailed, log)
		return nil, err
	}

	ligands, err := Discover(ws.LigandDir)
	if err != nil {
		r.finish(ctx, run, model.RunStateFailed, log)
		return nil, err
	}
	log.Info("ligands discovered", "count", len(ligands))

	reports, err := OpenReports(ws)
	if err != nil {
		r.finish(ctx, run, model.RunStateFailed, log)
		return nil, err
	}
	defer reports.Close()

	pipe := NewPipeline(ws, filepath.Join(ws.ReceptorDir, target.Prefix),
		tools.Scrub{Exec: r.Tools.Scrub, Timeout: r.Tools.Timeout},
		tools.PrepareLigand{Exec: r.Tools.PrepareLigand, Timeout: r.Tools.Timeout},
		tools.Vina{Exec: r.Tools.Vina, Timeout: r.Tools.Timeout, Exhaustiveness: receptor.Exhaustiveness},
		r.Logger,
	)

	var tally model.RunTally
	for _, source := range ligands {
		outcome := pipe.Process(ctx, source)
		tally.Add(outcome)
		if err := reports.Record(outcome); err != nil {
			r.finish(ctx, run, model.RunStateFailed, log)
			return nil, fmt.Errorf("write report: %w", err)
		}
		if r.Ledger != nil {
			outcome.RunID = run.ID
			if err := r.Ledger.AddOutcome(ctx, outcome); err != nil {
				log.Warn("ledger outcome write failed", "ligand", outcome.Ligand, "error", err)
			}
		}
	}

	summary := &Summary{RunID: run.ID, Tally: tally, Workspace: ws}
	run.Tally = tally

	if tally.Success == 0 {
		r.finish(ctx, run, model.RunStateFailed, log)
		return summary, model.ErrNoSuccessfulDockings
	}
	r.finish(ctx, run, model.RunStateCompleted, log)
	return summary, nil
}

// prepareReceptor is the one-time prerequisite gate: receptor preparation
// followed by grid computation, either failure fatal to the whole run.
func (r *Runner) prepareReceptor(ctx context.Context, ws workspace.Workspace, target receptor.Target) error {
	log := r.Logger.With("component", "runner")

	prep := tools.PrepareReceptor{Exec: r.Tools.PrepareReceptor, Timeout: r.Tools.Timeout}
	log.Info("preparing receptor", "pdb", ws.RawReceptorPath, "prefix", target.Prefix)
	if err := prep.Run(ctx, ws.ReceptorDir, ws.RawReceptorPath, target.Prefix, receptor.BoxSize, target.BoxCenter); err != nil {
		return &model.ReceptorPrepError{Step: "prepare", Err: err}
	}

	grid := tools.AutoGrid{Exec: r.Tools.AutoGrid, Timeout: r.Tools.Timeout}
	log.Info("computing grid", "prefix", target.Prefix)
	if err := grid.Run(ctx, ws.ReceptorDir, target.Prefix); err != nil {
		return &model.ReceptorPrepError{Step: "autogrid", Err: err}
	}
	return nil
}

// finish moves the ledger run record to its terminal state.
func (r *Runner) finish(ctx context.Context, run *model.Run, state model.RunState, log *slog.Logger) {
	if r.Ledger == nil {
		return
	}
	run.State = state
	run.CompletedAt = time.Now().UTC()
	if err := r.Ledger.FinishRun(ctx, run); err != nil {
		log.Warn("ledger finish failed", "run", run.ID, "error", err)
	}
}
