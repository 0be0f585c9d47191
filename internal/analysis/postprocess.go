// Package analysis post-processes docking run artifacts: affinity-sorted
// result tables and Pareto frontiers against synthesizability scores.
package analysis

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// resultRow is one parsed line of a docking results CSV.
type resultRow struct {
	Ligand   string
	Affinity float64
}

// SortResults reads a docking results CSV, drops malformed lines (anything
// without a comma), sorts data rows ascending by affinity (strongest
// predicted binders first), and writes the sorted table to outputPath.
func SortResults(inputPath, outputPath string) error {
	rows, err := readResults(inputPath)
	if err != nil {
		return err
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Affinity < rows[j].Affinity
	})

	var b strings.Builder
	b.WriteString("ligand,affinity_kcal/mol\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s,%s\n", row.Ligand, strconv.FormatFloat(row.Affinity, 'f', -1, 64))
	}
	if err := os.WriteFile(outputPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write sorted results: %w", err)
	}
	return nil
}

// readResults parses a `ligand,affinity_kcal/mol` CSV, skipping the header
// and any line without a comma.
func readResults(path string) ([]resultRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}

	var rows []resultRow
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, ",") {
			continue
		}
		if i == 0 && strings.HasPrefix(line, "ligand,") {
			continue
		}
		ligand, affinityStr, _ := strings.Cut(line, ",")
		affinity, err := strconv.ParseFloat(strings.TrimSpace(affinityStr), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad affinity %q", i+1, affinityStr)
		}
		rows = append(rows, resultRow{Ligand: ligand, Affinity: affinity})
	}
	return rows, nil
}
