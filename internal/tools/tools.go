// Package tools wraps the external chemistry programs the pipeline shells
// out to. Each wrapper is a small config struct with a Run method; the
// programs themselves are opaque collaborators.
package tools

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"
)

// Sentinel errors surfaced as per-ligand failure reasons.
var (
	ErrEmptyOutput        = errors.New("empty output file")
	ErrEmptyDockingOutput = errors.New("empty docking output")
	ErrNoScore            = errors.New("no valid score in output")
)

// noDiagnostic is the fallback reason when a failing tool wrote nothing
// to its error stream.
const noDiagnostic = "no error output captured"

// result captures the observable outcome of one child process.
type result struct {
	ExitCode int
	Stderr   string
}

// invoke runs one external command synchronously, capturing stderr in
// memory. dir, when non-empty, becomes the child's working directory; the
// orchestrator's own cwd is never touched. A positive timeout bounds the
// invocation through the context.
func invoke(ctx context.Context, timeout time.Duration, dir, exe string, args ...string) (result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = dir
	// A descendant of the tool can inherit stderr and keep Wait blocked
	// long after cancellation kills the tool itself; WaitDelay abandons
	// the pipe copy instead.
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := result{Stderr: stderr.String()}
	switch e := err.(type) {
	case nil:
	case *exec.ExitError:
		res.ExitCode = e.ExitCode()
	default:
		// Binary not found, context expired before start, and friends.
		return res, err
	}
	return res, nil
}

// reason converts captured stderr into a failure reason, falling back to a
// fixed string when the tool was silent. Multi-line stderr is folded onto
// one line so every error-log row stays a single ligand,stage,reason record.
func (r result) reason() string {
	s := strings.TrimSpace(r.Stderr)
	if s == "" {
		return noDiagnostic
	}
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "; ")
}

// failed reports a non-zero exit as an error carrying the stderr text.
func (r result) failed() error {
	return errors.New(r.reason())
}

// emptyFile reports whether path is missing or has zero length.
func emptyFile(path string) bool {
	info, err := os.Stat(path)
	return err != nil || info.Size() == 0
}
