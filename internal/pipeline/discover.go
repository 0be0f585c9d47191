package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/me/vinabatch/pkg/model"
)

// LigandExt is the single recognized ligand input format.
const LigandExt = ".sdf"

// Discover enumerates ligand input files in ligandDir, sorted by name.
// An empty result is fatal: it means a misconfigured or empty input
// directory, not a processing defect.
func Discover(ligandDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(ligandDir, "*"+LigandExt))
	if err != nil {
		return nil, fmt.Errorf("scan ligand dir %s: %w", ligandDir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", ligandDir, model.ErrNoLigands)
	}
	sort.Strings(matches)
	return matches, nil
}
