package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/analysis"
)

func newParetoCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pareto <scores-csv> <results-csv>",
		Short: "Compute the Pareto frontier of synthesizability vs binding affinity",
		Long: "Pareto joins a generator scores file (filename, SA_score) with docking\n" +
			"results on ligand id and writes the subset minimizing both SA score and\n" +
			"binding affinity.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, results := args[0], args[1]
			if output == "" {
				output = filepath.Join(filepath.Dir(results), "pareto_front.csv")
			}
			n, err := analysis.ParetoFront(scores, results, output)
			if err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d molecules on the frontier)\n", output, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: pareto_front.csv next to results)")
	return cmd
}
