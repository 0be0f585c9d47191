package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/pipeline"
	"github.com/me/vinabatch/internal/store"
)

func newRunCmd() *cobra.Command {
	var (
		root        string
		toolsConfig string
		toolTimeout time.Duration
		ledgerPath  string
	)

	cmd := &cobra.Command{
		Use:   "run <epoch> <num-mols> <batch-size> <pdb-id> <aurora> <experiment>",
		Short: "Run a batch docking pipeline over a directory of ligands",
		Long: "Run resolves the receptor from <pdb-id>/<aurora>, prepares the receptor\n" +
			"grid once, then scrubs, converts, and docks every .sdf ligand in the run's\n" +
			"ligand directory. Per-ligand failures are logged and skipped; the run as a\n" +
			"whole fails only when no ligand docks successfully.",
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.RunParams{
				Epoch:      args[0],
				NumMols:    args[1],
				BatchSize:  args[2],
				PDBID:      args[3],
				Aurora:     args[4],
				Experiment: args[5],
			}

			toolset := config.DefaultTools()
			if toolsConfig != "" {
				var err error
				if toolset, err = config.LoadTools(toolsConfig); err != nil {
					return err
				}
			}
			if toolTimeout > 0 {
				toolset.Timeout = toolTimeout
			}

			runner := &pipeline.Runner{
				Logger: logger,
				Tools:  toolset,
				Root:   root,
			}

			if ledgerPath != "" {
				st, err := store.NewSQLiteStore(ledgerPath, logger)
				if err != nil {
					return fmt.Errorf("open ledger: %w", err)
				}
				defer st.Close()
				if err := st.Migrate(cmd.Context()); err != nil {
					return fmt.Errorf("migrate ledger: %w", err)
				}
				runner.Ledger = st
			}

			summary, err := runner.Run(cmd.Context(), params)
			if summary != nil {
				printSummary(summary)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "Base directory for run workspaces")
	cmd.Flags().StringVar(&toolsConfig, "tools-config", "", "YAML file overriding external tool names")
	cmd.Flags().DurationVar(&toolTimeout, "tool-timeout", 0, "Per-invocation timeout for external tools (0 = none)")
	cmd.Flags().StringVar(&ledgerPath, "ledger", "", "SQLite database recording run history (optional)")

	return cmd
}

func printSummary(s *pipeline.Summary) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	bold.Printf("Run %s\n", s.RunID)
	fmt.Printf("  ligands:            %d\n", s.Tally.Total)
	green.Printf("  docked:             %d\n", s.Tally.Success)
	if n := s.Tally.FailedScrub; n > 0 {
		red.Printf("  failed scrubbing:   %d\n", n)
	}
	if n := s.Tally.FailedPrep; n > 0 {
		red.Printf("  failed preparation: %d\n", n)
	}
	if n := s.Tally.FailedDock; n > 0 {
		red.Printf("  failed docking:     %d\n", n)
	}
	fmt.Printf("  success rate:       %d%%\n", s.Tally.SuccessRate())
	fmt.Printf("  results:            %s\n", s.Workspace.ResultsPath)
	fmt.Printf("  failures:           %s\n", s.Workspace.ErrorLogPath)
}
