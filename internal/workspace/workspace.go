// Package workspace derives the on-disk layout of a docking run and
// initializes its directories and report files.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/receptor"
)

// Report file headers. Reruns truncate both files back to exactly these.
const (
	ResultsHeader  = "ligand,affinity_kcal/mol\n"
	ErrorLogHeader = "# ligands that failed a pipeline stage\n# ligand,stage,reason\n"
)

// Workspace holds every path a run touches. All fields are derived
// deterministically from the run parameters and the resolved receptor.
type Workspace struct {
	BaseDir           string
	LigandDir         string // input ligands; must pre-exist
	PreparedLigandDir string
	ReceptorDir       string // prepared receptor + grid maps, shared per pdb id
	RawReceptorPath   string
	OutputDir         string
	ResultsPath       string
	ErrorLogPath      string
}

// New derives the workspace layout under root. The base directory encodes
// all run identifiers so distinct runs never collide; the receptor
// directory is shared across experiments for the same receptor.
func New(root string, params config.RunParams, target receptor.Target) Workspace {
	base := filepath.Join(root, target.PDBID, fmt.Sprintf(
		"experiment_%s_%s_%s_%s_%s",
		params.Experiment, params.Epoch, params.NumMols, params.BatchSize, target.PDBID,
	))
	receptorRoot := filepath.Join(root, target.PDBID)
	return Workspace{
		BaseDir:           base,
		LigandDir:         filepath.Join(base, "ligands"),
		PreparedLigandDir: filepath.Join(base, "prepared_ligands"),
		ReceptorDir:       filepath.Join(receptorRoot, "prepared_receptor"),
		RawReceptorPath:   filepath.Join(receptorRoot, target.PDBID+".pdb"),
		OutputDir:         filepath.Join(base, "vina_outputs"),
		ResultsPath:       filepath.Join(base, "vina_results.csv"),
		ErrorLogPath:      filepath.Join(base, "failed_ligands.log"),
	}
}

// Init creates the run's output directories and truncates both report files
// to their headers. It is idempotent: pre-existing directories are not an
// error, and a rerun starts reporting from empty state. The ligand input
// directory is not created here; it belongs to the upstream generator.
func (w Workspace) Init() error {
	for _, dir := range []string{w.PreparedLigandDir, w.OutputDir, w.ReceptorDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(w.ResultsPath, []byte(ResultsHeader), 0o644); err != nil {
		return fmt.Errorf("init results file: %w", err)
	}
	if err := os.WriteFile(w.ErrorLogPath, []byte(ErrorLogHeader), 0o644); err != nil {
		return fmt.Errorf("init error log: %w", err)
	}
	return nil
}
