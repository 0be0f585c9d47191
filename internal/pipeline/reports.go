package pipeline

import (
	"fmt"
	"os"
	"strconv"

	"github.com/me/vinabatch/internal/workspace"
	"github.com/me/vinabatch/pkg/model"
)

// Reports appends per-ligand outcomes to the two run artifacts: the results
// CSV and the failed-ligands log. The workspace initializer has already
// written the headers; Reports only ever appends data rows.
type Reports struct {
	results *os.File
	errlog  *os.File
}

// OpenReports opens both report files for appending.
func OpenReports(ws workspace.Workspace) (*Reports, error) {
	results, err := os.OpenFile(ws.ResultsPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open results file: %w", err)
	}
	errlog, err := os.OpenFile(ws.ErrorLogPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		results.Close()
		return nil, fmt.Errorf("open error log: %w", err)
	}
	return &Reports{results: results, errlog: errlog}, nil
}

// Record appends o to whichever artifact it belongs in: a results row on
// success, an error-log line on failure.
func (r *Reports) Record(o model.LigandOutcome) error {
	if o.Success {
		_, err := fmt.Fprintf(r.results, "%s,%s\n", o.Ligand, formatAffinity(o.Affinity))
		return err
	}
	_, err := fmt.Fprintf(r.errlog, "%s,%s,%s\n", o.Ligand, o.Stage, o.Reason)
	return err
}

// Close flushes and closes both files.
func (r *Reports) Close() error {
	err1 := r.results.Close()
	err2 := r.errlog.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// formatAffinity renders an affinity exactly as the docking output carried
// it, without trailing zeros.
func formatAffinity(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}
