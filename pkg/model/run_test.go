package model

import "testing"

func TestRunTally_Add(t *testing.T) {
	var tally RunTally
	tally.Add(Succeeded("a", -7.2))
	tally.Add(Failed("b", StageScrubbing, "bad valence"))
	tally.Add(Failed("c", StagePreparation, "no atoms"))
	tally.Add(Failed("d", StageDocking, "empty docking output"))
	tally.Add(Succeeded("e", -9.0))

	want := RunTally{Total: 5, Success: 2, FailedScrub: 1, FailedPrep: 1, FailedDock: 1}
	if tally != want {
		t.Errorf("tally = %+v, want %+v", tally, want)
	}

	// Total always equals the sum of the four outcome counters.
	sum := tally.Success + tally.FailedScrub + tally.FailedPrep + tally.FailedDock
	if tally.Total != sum {
		t.Errorf("Total = %d, counter sum = %d", tally.Total, sum)
	}
}

func TestRunTally_SuccessRate(t *testing.T) {
	tests := []struct {
		name  string
		tally RunTally
		want  int
	}{
		{"empty tally guards division", RunTally{}, 0},
		{"one of three floors to 33", RunTally{Total: 3, Success: 1}, 33},
		{"two of three floors to 66", RunTally{Total: 3, Success: 2}, 66},
		{"all succeed", RunTally{Total: 4, Success: 4}, 100},
		{"none succeed", RunTally{Total: 4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tally.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStage_Valid(t *testing.T) {
	for _, s := range []Stage{StageScrubbing, StagePreparation, StageDocking} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Stage("extraction").Valid() {
		t.Error("unknown stage should not be valid")
	}
}

func TestRunState_IsTerminal(t *testing.T) {
	if RunStateRunning.IsTerminal() {
		t.Error("RUNNING must not be terminal")
	}
	if !RunStateCompleted.IsTerminal() || !RunStateFailed.IsTerminal() {
		t.Error("COMPLETED and FAILED must be terminal")
	}
}
