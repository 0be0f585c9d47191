package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/store"
	"github.com/me/vinabatch/pkg/model"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past runs from the ledger, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewSQLiteStore(dbPath, logger)
			if err != nil {
				return fmt.Errorf("open ledger: %w", err)
			}
			defer st.Close()
			if err := st.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate ledger: %w", err)
			}

			opts := model.ListOptions{Limit: limit}
			opts.Clamp()
			runs, total, err := st.ListRuns(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if total == 0 {
				fmt.Println("no runs recorded")
				return nil
			}

			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			for _, run := range runs {
				state := green
				if run.State == model.RunStateFailed {
					state = red
				}
				fmt.Printf("%s  %s  %s/%s  exp %s  ", run.ID,
					run.CreatedAt.Format("2006-01-02 15:04"), run.PDBID, run.Aurora, run.Experiment)
				state.Printf("%-9s", run.State)
				fmt.Printf("  %d/%d docked\n", run.Tally.Success, run.Tally.Total)
			}
			if total > len(runs) {
				fmt.Printf("(%d of %d runs)\n", len(runs), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "vinabatch.db", "SQLite ledger path")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	return cmd
}
