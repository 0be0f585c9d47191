package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// MergedRow joins one ligand's synthesizability score with its docking
// affinity.
type MergedRow struct {
	Filename string
	SAScore  float64
	Ligand   string
	Affinity float64
}

// ParetoFront merges a synthesizability score CSV (columns include
// `filename` and `SA_score`) with a docking results CSV, computes the
// Pareto frontier minimizing both SA_score and affinity, and writes the
// frontier rows to outputPath. Returns the frontier size.
//
// Matching mirrors the upstream convention: all-digit ligand ids gain a
// `.sdf` suffix before comparison against the score file's filenames.
func ParetoFront(scoresPath, resultsPath, outputPath string) (int, error) {
	merged, err := merge(scoresPath, resultsPath)
	if err != nil {
		return 0, err
	}

	front := paretoMin(merged)

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("create pareto output: %w", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"filename", "SA_score", "ligand", "affinity_kcal/mol"}); err != nil {
		return 0, err
	}
	for _, row := range front {
		record := []string{
			row.Filename,
			strconv.FormatFloat(row.SAScore, 'f', -1, 64),
			row.Ligand,
			strconv.FormatFloat(row.Affinity, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return 0, err
		}
	}
	w.Flush()
	return len(front), w.Error()
}

// merge inner-joins score rows with docking rows on filename.
func merge(scoresPath, resultsPath string) ([]MergedRow, error) {
	scores, err := readScores(scoresPath)
	if err != nil {
		return nil, err
	}
	results, err := readResults(resultsPath)
	if err != nil {
		return nil, err
	}

	var merged []MergedRow
	for _, row := range results {
		key := row.Ligand
		if isAllDigits(key) {
			key += ".sdf"
		}
		sa, ok := scores[key]
		if !ok {
			continue
		}
		merged = append(merged, MergedRow{
			Filename: key,
			SAScore:  sa,
			Ligand:   row.Ligand,
			Affinity: row.Affinity,
		})
	}
	return merged, nil
}

// readScores maps filename → SA_score from a score CSV with arbitrary
// extra columns.
func readScores(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse scores %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("scores file %s is empty", path)
	}

	nameIdx, saIdx := -1, -1
	for i, col := range records[0] {
		switch strings.TrimSpace(col) {
		case "filename":
			nameIdx = i
		case "SA_score":
			saIdx = i
		}
	}
	if nameIdx < 0 || saIdx < 0 {
		return nil, fmt.Errorf("scores file %s lacks filename/SA_score columns", path)
	}

	scores := make(map[string]float64, len(records)-1)
	for _, record := range records[1:] {
		if len(record) <= nameIdx || len(record) <= saIdx {
			continue
		}
		sa, err := strconv.ParseFloat(strings.TrimSpace(record[saIdx]), 64)
		if err != nil {
			continue
		}
		scores[strings.TrimSpace(record[nameIdx])] = sa
	}
	return scores, nil
}

// paretoMin keeps the frontier minimizing (SAScore, Affinity): rows sorted
// by SA score, retaining each row that improves on the best affinity seen
// so far.
func paretoMin(rows []MergedRow) []MergedRow {
	sorted := make([]MergedRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SAScore != sorted[j].SAScore {
			return sorted[i].SAScore < sorted[j].SAScore
		}
		return sorted[i].Affinity < sorted[j].Affinity
	})

	var front []MergedRow
	best := 0.0
	for i, row := range sorted {
		if i == 0 || row.Affinity < best {
			front = append(front, row)
			best = row.Affinity
		}
	}
	return front
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
