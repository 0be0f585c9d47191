package model

// Stage identifies a step of the per-ligand docking pipeline.
type Stage string

const (
	StageScrubbing   Stage = "scrubbing"
	StagePreparation Stage = "preparation"
	StageDocking     Stage = "docking"
)

// String returns the string representation of the stage.
func (s Stage) String() string {
	return string(s)
}

// Valid reports whether s is one of the known pipeline stages.
func (s Stage) Valid() bool {
	switch s {
	case StageScrubbing, StagePreparation, StageDocking:
		return true
	}
	return false
}

// RunState represents the lifecycle state of a batch run.
type RunState string

const (
	RunStateRunning   RunState = "RUNNING"
	RunStateCompleted RunState = "COMPLETED"
	RunStateFailed    RunState = "FAILED"
)

// String returns the string representation of the run state.
func (s RunState) String() string {
	return string(s)
}

// IsTerminal returns true if the run is in a final state.
func (s RunState) IsTerminal() bool {
	switch s {
	case RunStateCompleted, RunStateFailed:
		return true
	}
	return false
}
