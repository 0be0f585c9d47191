package tools

import (
	"context"
	"strconv"
	"time"
)

// PrepareLigand converts a scrubbed ligand into the docking input format.
type PrepareLigand struct {
	Exec    string
	Timeout time.Duration
}

// Run converts scrubbedSDF into outputPDBQT, with the same failure contract
// as Scrub.Run: stderr on non-zero exit, ErrEmptyOutput on a hollow success.
func (c PrepareLigand) Run(ctx context.Context, scrubbedSDF, outputPDBQT string) error {
	res, err := invoke(ctx, c.Timeout, "", c.Exec, "-i", scrubbedSDF, "-o", outputPDBQT)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return res.failed()
	}
	if emptyFile(outputPDBQT) {
		return ErrEmptyOutput
	}
	return nil
}

// PrepareReceptor produces docking-ready receptor files and the grid
// parameter file under the prepared-receptor directory.
type PrepareReceptor struct {
	Exec    string
	Timeout time.Duration
}

// Run prepares rawPDB under workDir using prefix for all generated
// artifacts. Bad receptor residues are tolerated (the original pipeline
// always passed the allow flag). Any failure is fatal to the run; the
// caller decides that, this wrapper only reports it.
func (c PrepareReceptor) Run(ctx context.Context, workDir, rawPDB, prefix string, boxSize, boxCenter [3]float64) error {
	args := []string{
		"--read_pdb", rawPDB,
		"-o", prefix,
		"-p", "-g",
		"--box_size", ftoa(boxSize[0]), ftoa(boxSize[1]), ftoa(boxSize[2]),
		"--box_center", ftoa(boxCenter[0]), ftoa(boxCenter[1]), ftoa(boxCenter[2]),
		"-a",
	}
	res, err := invoke(ctx, c.Timeout, workDir, c.Exec, args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return res.failed()
	}
	return nil
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
