package tools

import (
	"context"
	"time"
)

// AutoGrid precomputes the receptor interaction grid from the generated
// parameter file.
type AutoGrid struct {
	Exec    string
	Timeout time.Duration
}

// Run executes the grid computation with workDir as the child's working
// directory, reading <prefix>.gpf and logging to <prefix>.glg. The parent
// process cwd is left untouched on every outcome.
func (c AutoGrid) Run(ctx context.Context, workDir, prefix string) error {
	res, err := invoke(ctx, c.Timeout, workDir, c.Exec, "-p", prefix+".gpf", "-l", prefix+".glg")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return res.failed()
	}
	return nil
}
