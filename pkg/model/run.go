package model

import "time"

// Run records one batch docking run.
type Run struct {
	ID          string    `json:"id"`
	Epoch       string    `json:"epoch"`
	NumMols     string    `json:"num_mols"`
	BatchSize   string    `json:"batch_size"`
	PDBID       string    `json:"pdb_id"`
	Aurora      string    `json:"aurora"`
	Experiment  string    `json:"experiment"`
	State       RunState  `json:"state"`
	Tally       RunTally  `json:"tally"`
	ResultsPath string    `json:"results_path"`
	ErrorsPath  string    `json:"errors_path"`
	CreatedAt   time.Time `json:"created_at"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
}

// LigandOutcome is the terminal result of one ligand's pipeline pass.
// Exactly one of Affinity (on success) or Stage+Reason (on failure) is
// meaningful.
type LigandOutcome struct {
	RunID    string  `json:"run_id,omitempty"`
	Ligand   string  `json:"ligand"`
	Success  bool    `json:"success"`
	Affinity float64 `json:"affinity,omitempty"`
	Stage    Stage   `json:"stage,omitempty"`
	Reason   string  `json:"reason,omitempty"`
}

// Succeeded builds a successful outcome for a ligand.
func Succeeded(ligand string, affinity float64) LigandOutcome {
	return LigandOutcome{Ligand: ligand, Success: true, Affinity: affinity}
}

// Failed builds a failed outcome tagged with the stage that broke.
func Failed(ligand string, stage Stage, reason string) LigandOutcome {
	return LigandOutcome{Ligand: ligand, Stage: stage, Reason: reason}
}

// RunTally accumulates per-stage counters across a whole run.
// Each ligand outcome increments exactly one failure counter or Success,
// and always Total.
type RunTally struct {
	Total       int `json:"total"`
	Success     int `json:"success"`
	FailedScrub int `json:"failed_scrubbing"`
	FailedPrep  int `json:"failed_preparation"`
	FailedDock  int `json:"failed_docking"`
}

// Add folds one outcome into the tally.
func (t *RunTally) Add(o LigandOutcome) {
	t.Total++
	if o.Success {
		t.Success++
		return
	}
	switch o.Stage {
	case StageScrubbing:
		t.FailedScrub++
	case StagePreparation:
		t.FailedPrep++
	case StageDocking:
		t.FailedDock++
	}
}

// SuccessRate returns floor(success*100/total), or 0 when the tally is empty.
func (t RunTally) SuccessRate() int {
	if t.Total == 0 {
		return 0
	}
	return t.Success * 100 / t.Total
}

// ListOptions controls pagination for list queries.
type ListOptions struct {
	Limit  int
	Offset int
}

// Clamp bounds Limit and Offset to sane values.
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 50
	}
	if o.Limit > 500 {
		o.Limit = 500
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}
