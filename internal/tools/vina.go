package tools

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"time"
)

// ScoringMode is the Vina scoring function used with precomputed AutoGrid
// maps.
const ScoringMode = "ad4"

// resultMarker starts the output line carrying the best binding mode.
const resultMarker = "REMARK VINA RESULT:"

// Vina runs the docking engine against precomputed receptor maps.
type Vina struct {
	Exec           string
	Timeout        time.Duration
	Exhaustiveness int
}

// Run docks ligandPDBQT against the maps named by mapsPrefix, writing poses
// to outputPDBQT. Non-zero exit returns stderr as the error.
func (c Vina) Run(ctx context.Context, ligandPDBQT, mapsPrefix, outputPDBQT string) error {
	res, err := invoke(ctx, c.Timeout, "", c.Exec,
		"--ligand", ligandPDBQT,
		"--maps", mapsPrefix,
		"--scoring", ScoringMode,
		"--exhaustiveness", strconv.Itoa(c.Exhaustiveness),
		"--out", outputPDBQT,
	)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return res.failed()
	}
	return nil
}

// BestAffinity extracts the binding affinity (kcal/mol) of the best pose
// from a Vina output file: the fourth whitespace-delimited token of the
// first line starting with the result marker. Returns
// ErrEmptyDockingOutput for a missing or empty file and ErrNoScore when no
// marker line parses.
func BestAffinity(outputPDBQT string) (float64, error) {
	if emptyFile(outputPDBQT) {
		return 0, ErrEmptyDockingOutput
	}

	f, err := os.Open(outputPDBQT)
	if err != nil {
		return 0, ErrEmptyDockingOutput
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, resultMarker) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return 0, ErrNoScore
		}
		affinity, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return 0, ErrNoScore
		}
		return affinity, nil
	}
	return 0, ErrNoScore
}
