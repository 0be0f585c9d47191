package tools

import (
	"context"
	"time"
)

// Scrub standardizes a raw ligand structure prior to format conversion.
type Scrub struct {
	Exec    string
	Timeout time.Duration
}

// Run scrubs inputSDF into outputSDF. A non-zero exit returns the tool's
// stderr as the error; a clean exit that left no usable output returns
// ErrEmptyOutput.
func (c Scrub) Run(ctx context.Context, inputSDF, outputSDF string) error {
	res, err := invoke(ctx, c.Timeout, "", c.Exec, inputSDF, "-o", outputSDF)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return res.failed()
	}
	if emptyFile(outputSDF) {
		return ErrEmptyOutput
	}
	return nil
}
