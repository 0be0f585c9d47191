// Package pipeline implements the per-ligand docking state machine and the
// run-level orchestration around it.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/me/vinabatch/internal/tools"
	"github.com/me/vinabatch/internal/workspace"
	"github.com/me/vinabatch/pkg/model"
)

// LigandTask holds the per-ligand file paths for one pipeline pass. It is
// never persisted beyond the run's output artifacts.
type LigandTask struct {
	ID        string
	Source    string
	Scrubbed  string
	Converted string
	Output    string
}

// newTask derives a task from a discovered input file; the ligand id is the
// source filename with its extension stripped.
func newTask(ws workspace.Workspace, sourcePath string) LigandTask {
	id := strings.TrimSuffix(filepath.Base(sourcePath), LigandExt)
	return LigandTask{
		ID:        id,
		Source:    sourcePath,
		Scrubbed:  filepath.Join(ws.PreparedLigandDir, id+"_scrubbed.sdf"),
		Converted: filepath.Join(ws.PreparedLigandDir, id+".pdbqt"),
		Output:    filepath.Join(ws.OutputDir, id+"_out.pdbqt"),
	}
}

// Pipeline runs the scrub → prepare → dock → extract sequence for single
// ligands, short-circuiting on the first failing stage.
type Pipeline struct {
	logger     *slog.Logger
	scrub      tools.Scrub
	prepare    tools.PrepareLigand
	vina       tools.Vina
	ws         workspace.Workspace
	mapsPrefix string
}

// NewPipeline wires a pipeline against an initialized workspace.
// mapsPrefix must name the receptor grid maps produced by the preparation
// gate.
func NewPipeline(ws workspace.Workspace, mapsPrefix string, scrub tools.Scrub, prepare tools.PrepareLigand, vina tools.Vina, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger:     logger.With("component", "pipeline"),
		scrub:      scrub,
		prepare:    prepare,
		vina:       vina,
		ws:         ws,
		mapsPrefix: mapsPrefix,
	}
}

// Process runs one ligand through the full stage sequence and returns its
// tagged outcome. Failures never escape as errors: every failure mode is
// folded into the outcome so the caller's loop can simply continue.
func (p *Pipeline) Process(ctx context.Context, sourcePath string) model.LigandOutcome {
	task := newTask(p.ws, sourcePath)
	log := p.logger.With("ligand", task.ID)

	log.Debug("scrubbing", "input", task.Source)
	if err := p.scrub.Run(ctx, task.Source, task.Scrubbed); err != nil {
		log.Warn("scrub failed", "reason", err.Error())
		return model.Failed(task.ID, model.StageScrubbing, err.Error())
	}

	log.Debug("preparing", "input", task.Scrubbed)
	if err := p.prepare.Run(ctx, task.Scrubbed, task.Converted); err != nil {
		log.Warn("preparation failed", "reason", err.Error())
		return model.Failed(task.ID, model.StagePreparation, err.Error())
	}

	log.Debug("docking", "ligand", task.Converted, "maps", p.mapsPrefix)
	if err := p.vina.Run(ctx, task.Converted, p.mapsPrefix, task.Output); err != nil {
		log.Warn("docking failed", "reason", err.Error())
		return model.Failed(task.ID, model.StageDocking, err.Error())
	}

	affinity, err := tools.BestAffinity(task.Output)
	if err != nil {
		log.Warn("score extraction failed", "reason", err.Error())
		return model.Failed(task.ID, model.StageDocking, err.Error())
	}

	log.Info("docked", "affinity", affinity)
	return model.Succeeded(task.ID, affinity)
}
