package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/receptor"
)

func testParams() config.RunParams {
	return config.RunParams{
		Epoch:      "12",
		NumMols:    "100",
		BatchSize:  "0",
		PDBID:      "4af3",
		Aurora:     "B",
		Experiment: "bmB",
	}
}

func TestNew_Layout(t *testing.T) {
	target, err := receptor.Resolve("4af3", "B")
	if err != nil {
		t.Fatal(err)
	}
	ws := New("/data", testParams(), target)

	wantBase := filepath.Join("/data", "4af3", "experiment_bmB_12_100_0_4af3")
	if ws.BaseDir != wantBase {
		t.Errorf("BaseDir = %q, want %q", ws.BaseDir, wantBase)
	}
	if ws.LigandDir != filepath.Join(wantBase, "ligands") {
		t.Errorf("LigandDir = %q", ws.LigandDir)
	}
	if ws.PreparedLigandDir != filepath.Join(wantBase, "prepared_ligands") {
		t.Errorf("PreparedLigandDir = %q", ws.PreparedLigandDir)
	}
	if ws.OutputDir != filepath.Join(wantBase, "vina_outputs") {
		t.Errorf("OutputDir = %q", ws.OutputDir)
	}
	if ws.ResultsPath != filepath.Join(wantBase, "vina_results.csv") {
		t.Errorf("ResultsPath = %q", ws.ResultsPath)
	}
	if ws.ErrorLogPath != filepath.Join(wantBase, "failed_ligands.log") {
		t.Errorf("ErrorLogPath = %q", ws.ErrorLogPath)
	}
	// Receptor artifacts live outside the experiment dir, shared per pdb id.
	if ws.ReceptorDir != filepath.Join("/data", "4af3", "prepared_receptor") {
		t.Errorf("ReceptorDir = %q", ws.ReceptorDir)
	}
	if ws.RawReceptorPath != filepath.Join("/data", "4af3", "4af3.pdb") {
		t.Errorf("RawReceptorPath = %q", ws.RawReceptorPath)
	}
}

func TestInit_CreatesDirsAndHeaders(t *testing.T) {
	target, _ := receptor.Resolve("4ceg", "")
	ws := New(t.TempDir(), testParams(), target)

	if err := ws.Init(); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	for _, dir := range []string{ws.PreparedLigandDir, ws.OutputDir, ws.ReceptorDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s not created: %v", dir, err)
		}
	}

	results, err := os.ReadFile(ws.ResultsPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(results) != ResultsHeader {
		t.Errorf("results file = %q, want header only", results)
	}
	errlog, err := os.ReadFile(ws.ErrorLogPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(errlog) != ErrorLogHeader {
		t.Errorf("error log = %q, want header only", errlog)
	}
}

func TestInit_Idempotent(t *testing.T) {
	target, _ := receptor.Resolve("4af3", "")
	ws := New(t.TempDir(), testParams(), target)

	if err := ws.Init(); err != nil {
		t.Fatal(err)
	}

	// Simulate a prior run's report content; rerun must truncate it.
	f, err := os.OpenFile(ws.ResultsPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("mol_1,-7.2\n")
	f.Close()

	if err := ws.Init(); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}

	results, _ := os.ReadFile(ws.ResultsPath)
	if string(results) != ResultsHeader {
		t.Errorf("rerun left stale rows: %q", results)
	}
	errlog, _ := os.ReadFile(ws.ErrorLogPath)
	if string(errlog) != ErrorLogHeader {
		t.Errorf("rerun left stale error log: %q", errlog)
	}
}
