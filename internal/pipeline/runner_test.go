package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/logging"
	"github.com/me/vinabatch/internal/receptor"
	"github.com/me/vinabatch/internal/workspace"
	"github.com/me/vinabatch/pkg/model"
)

// Stub scripts standing in for the external chemistry tools. The scrub stub
// fails for ligands named *badscrub*, the prepare stub for *badprep*, and
// the vina stub emits a score-free output for *noscore*.
const (
	scrubScript = `case "$1" in
*badscrub*) echo "scrub blew up" >&2; exit 1 ;;
esac
cp "$1" "$3"
`
	prepScript = `case "$2" in
*badprep*) echo "meeko rejected ligand" >&2; exit 1 ;;
esac
cp "$2" "$4"
`
	vinaScript = `lig="$2"
out="${10}"
case "$lig" in
*noscore*) printf 'ATOM 1\n' > "$out" ;;
*baddock*) echo "vina crashed" >&2; exit 1 ;;
*) printf 'REMARK VINA RESULT:    -8.1      0.000      0.000\n' > "$out" ;;
esac
`
	okScript = `exit 0
`
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX shell")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func testParams() config.RunParams {
	return config.RunParams{
		Epoch: "3", NumMols: "10", BatchSize: "0",
		PDBID: "4af3", Aurora: "B", Experiment: "unit",
	}
}

// setupRun builds stub tools plus a workspace root with the given ligand
// files already in place.
func setupRun(t *testing.T, ligands ...string) (*Runner, config.RunParams) {
	t.Helper()
	stubDir := t.TempDir()
	root := t.TempDir()
	tools := config.Tools{
		Scrub:           writeStub(t, stubDir, "scrub.sh", scrubScript),
		PrepareLigand:   writeStub(t, stubDir, "prep_ligand.sh", prepScript),
		PrepareReceptor: writeStub(t, stubDir, "prep_receptor.sh", okScript),
		AutoGrid:        writeStub(t, stubDir, "autogrid.sh", okScript),
		Vina:            writeStub(t, stubDir, "vina.sh", vinaScript),
	}

	params := testParams()
	target, err := receptor.Resolve(params.PDBID, params.Aurora)
	if err != nil {
		t.Fatal(err)
	}
	ws := workspace.New(root, params, target)
	if err := os.MkdirAll(ws.LigandDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range ligands {
		path := filepath.Join(ws.LigandDir, name)
		if err := os.WriteFile(path, []byte("molecule\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return &Runner{Logger: logging.Discard(), Tools: tools, Root: root}, params
}

func TestRunner_EndToEnd(t *testing.T) {
	// One ligand succeeds with -8.1, one fails scrubbing, one docks but
	// yields no parseable score.
	r, params := setupRun(t, "good.sdf", "badscrub.sdf", "noscore.sdf")

	summary, err := r.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := model.RunTally{Total: 3, Success: 1, FailedScrub: 1, FailedDock: 1}
	if summary.Tally != want {
		t.Errorf("tally = %+v, want %+v", summary.Tally, want)
	}
	if rate := summary.Tally.SuccessRate(); rate != 33 {
		t.Errorf("success rate = %d, want 33", rate)
	}

	results, err := os.ReadFile(summary.Workspace.ResultsPath)
	if err != nil {
		t.Fatal(err)
	}
	wantResults := workspace.ResultsHeader + "good,-8.1\n"
	if string(results) != wantResults {
		t.Errorf("results file = %q, want %q", results, wantResults)
	}

	errlog, err := os.ReadFile(summary.Workspace.ErrorLogPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(errlog), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("error log has %d lines, want 2 header + 2 failures:\n%s", len(lines), errlog)
	}
	if lines[2] != "badscrub,scrubbing,scrub blew up" {
		t.Errorf("scrub failure line = %q", lines[2])
	}
	if lines[3] != "noscore,docking,no valid score in output" {
		t.Errorf("docking failure line = %q", lines[3])
	}
}

func TestRunner_InvalidSelectorHasNoSideEffects(t *testing.T) {
	r, params := setupRun(t)
	params.PDBID = "9xyz"
	params.Aurora = "Q"

	_, err := r.Run(context.Background(), params)
	var selErr *model.InvalidReceptorError
	if !errors.As(err, &selErr) {
		t.Fatalf("error = %v, want *model.InvalidReceptorError", err)
	}

	// Nothing for the bogus receptor id may exist under the root.
	if _, statErr := os.Stat(filepath.Join(r.Root, "9xyz")); !os.IsNotExist(statErr) {
		t.Errorf("invalid selector produced side effects under %s", r.Root)
	}
}

func TestRunner_NoLigandsIsFatalButLeavesHeaders(t *testing.T) {
	r, params := setupRun(t) // ligand dir exists, no files

	_, err := r.Run(context.Background(), params)
	if !errors.Is(err, model.ErrNoLigands) {
		t.Fatalf("error = %v, want ErrNoLigands", err)
	}

	// Headers are written before discovery; the abort leaves header-only
	// report files behind.
	target, _ := receptor.Resolve(params.PDBID, params.Aurora)
	ws := workspace.New(r.Root, params, target)
	results, readErr := os.ReadFile(ws.ResultsPath)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(results) != workspace.ResultsHeader {
		t.Errorf("results file = %q, want header only", results)
	}
}

func TestRunner_ReceptorPrepFailureIsFatal(t *testing.T) {
	r, params := setupRun(t, "good.sdf")
	r.Tools.AutoGrid = writeStub(t, t.TempDir(), "autogrid.sh", "echo 'no gpf' >&2\nexit 2\n")

	_, err := r.Run(context.Background(), params)
	var prepErr *model.ReceptorPrepError
	if !errors.As(err, &prepErr) {
		t.Fatalf("error = %v, want *model.ReceptorPrepError", err)
	}
	if prepErr.Step != "autogrid" {
		t.Errorf("Step = %q, want autogrid", prepErr.Step)
	}

	// The gate aborts the run before any ligand processing.
	target, _ := receptor.Resolve(params.PDBID, params.Aurora)
	ws := workspace.New(r.Root, params, target)
	results, _ := os.ReadFile(ws.ResultsPath)
	if string(results) != workspace.ResultsHeader {
		t.Errorf("results progressed past header despite fatal gate: %q", results)
	}
}

func TestRunner_ZeroSuccessesFailsTheRun(t *testing.T) {
	r, params := setupRun(t, "badscrub.sdf", "badprep.sdf", "baddock.sdf")

	summary, err := r.Run(context.Background(), params)
	if !errors.Is(err, model.ErrNoSuccessfulDockings) {
		t.Fatalf("error = %v, want ErrNoSuccessfulDockings", err)
	}
	if summary == nil {
		t.Fatal("summary is nil; aggregate must still be reported")
	}

	want := model.RunTally{Total: 3, FailedScrub: 1, FailedPrep: 1, FailedDock: 1}
	if summary.Tally != want {
		t.Errorf("tally = %+v, want %+v", summary.Tally, want)
	}
}

func TestRunner_FailureIsolation(t *testing.T) {
	// A ligand failing in the middle of the batch must not stop later ones.
	r, params := setupRun(t, "a_good.sdf", "m_badscrub.sdf", "z_good.sdf")

	summary, err := r.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if summary.Tally.Success != 2 || summary.Tally.FailedScrub != 1 {
		t.Errorf("tally = %+v, want 2 successes around 1 scrub failure", summary.Tally)
	}
}

// fakeLedger records calls for assertions.
type fakeLedger struct {
	created  []model.Run
	outcomes []model.LigandOutcome
	finished []model.Run
}

func (f *fakeLedger) CreateRun(_ context.Context, run *model.Run) error {
	f.created = append(f.created, *run)
	return nil
}

func (f *fakeLedger) AddOutcome(_ context.Context, o model.LigandOutcome) error {
	f.outcomes = append(f.outcomes, o)
	return nil
}

func (f *fakeLedger) FinishRun(_ context.Context, run *model.Run) error {
	f.finished = append(f.finished, *run)
	return nil
}

func TestRunner_LedgerRecordsRun(t *testing.T) {
	r, params := setupRun(t, "good.sdf", "badscrub.sdf")
	ledger := &fakeLedger{}
	r.Ledger = ledger

	summary, err := r.Run(context.Background(), params)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(ledger.created) != 1 {
		t.Fatalf("CreateRun called %d times, want 1", len(ledger.created))
	}
	if ledger.created[0].State != model.RunStateRunning {
		t.Errorf("created state = %s, want RUNNING", ledger.created[0].State)
	}
	if len(ledger.outcomes) != 2 {
		t.Fatalf("AddOutcome called %d times, want 2", len(ledger.outcomes))
	}
	for _, o := range ledger.outcomes {
		if o.RunID != summary.RunID {
			t.Errorf("outcome run id = %q, want %q", o.RunID, summary.RunID)
		}
	}
	if len(ledger.finished) != 1 || ledger.finished[0].State != model.RunStateCompleted {
		t.Errorf("finished = %+v, want one COMPLETED record", ledger.finished)
	}
	if ledger.finished[0].Tally != summary.Tally {
		t.Errorf("ledger tally = %+v, want %+v", ledger.finished[0].Tally, summary.Tally)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.sdf", "a.sdf", "notes.txt", "c.pdbqt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ligands, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover returned error: %v", err)
	}
	if len(ligands) != 2 {
		t.Fatalf("found %d ligands, want 2 (.sdf only)", len(ligands))
	}
	if filepath.Base(ligands[0]) != "a.sdf" || filepath.Base(ligands[1]) != "b.sdf" {
		t.Errorf("ligands not sorted: %v", ligands)
	}
}

func TestDiscover_EmptyIsFatal(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, model.ErrNoLigands) {
		t.Fatalf("error = %v, want ErrNoLigands", err)
	}
}
