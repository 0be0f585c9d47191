package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/analysis"
)

func newPostprocessCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "postprocess <results-csv>",
		Short: "Sort a results CSV by affinity, best first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if output == "" {
				output = filepath.Join(filepath.Dir(input), "vina_results_postprocessed.csv")
			}
			if err := analysis.SortResults(input, output); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default: vina_results_postprocessed.csv next to input)")
	return cmd
}
