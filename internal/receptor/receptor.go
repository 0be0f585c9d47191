// Package receptor maps the (pdb id, aurora variant) selector onto one of
// the two supported Aurora kinase targets.
package receptor

import "github.com/me/vinabatch/pkg/model"

// Fixed docking-search constants, identical for both targets.
const (
	// Exhaustiveness is the Vina search-effort parameter.
	Exhaustiveness = 8
)

// BoxSize is the search-box edge length triple in angstroms.
var BoxSize = [3]float64{40, 40, 40}

// Target describes a resolved receptor: its canonical PDB id, the prefix
// used to name prepared-receptor artifacts (maps, gpf, glg), and the center
// of the docking search box.
type Target struct {
	PDBID     string
	Prefix    string
	BoxCenter [3]float64
}

// The two supported receptor identities. Aurora B binds to 4af3,
// Aurora A to 4ceg; either signal alone selects the target.
var (
	auroraB = Target{
		PDBID:     "4af3",
		Prefix:    "4af3_receptor",
		BoxCenter: [3]float64{21, -21, 12},
	}
	auroraA = Target{
		PDBID:     "4ceg",
		Prefix:    "4ceg_receptor",
		BoxCenter: [3]float64{10, 20, 5},
	}
)

// Targets returns the supported receptors, Aurora A first.
func Targets() []Target {
	return []Target{auroraA, auroraB}
}

// Resolve maps a selector onto a Target. It fails closed: any pair matching
// neither receptor returns *model.InvalidReceptorError and the caller must
// not have produced side effects yet.
func Resolve(pdbID, aurora string) (Target, error) {
	switch {
	case pdbID == "4af3" || aurora == "B":
		return auroraB, nil
	case pdbID == "4ceg" || aurora == "A":
		return auroraA, nil
	}
	return Target{}, &model.InvalidReceptorError{PDBID: pdbID, Aurora: aurora}
}
