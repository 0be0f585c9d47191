package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/logging"
)

var (
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the vinabatch CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vinabatch",
		Short: "vinabatch — batch ligand docking against Aurora kinase receptors",
		Long: "vinabatch prepares generated ligands, docks them with AutoDock Vina\n" +
			"against a precomputed receptor grid, and aggregates scores and failures.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(logging.ParseLevel(flagLogLevel), flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newReceptorsCmd(),
		newPostprocessCmd(),
		newParetoCmd(),
		newHistoryCmd(),
		newServeCmd(),
	)

	return root
}
