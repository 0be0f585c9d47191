package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/me/vinabatch/internal/receptor"
)

func newReceptorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "receptors",
		Short: "List the supported receptor targets",
		Run: func(cmd *cobra.Command, args []string) {
			bold := color.New(color.Bold)
			for _, t := range receptor.Targets() {
				bold.Println(t.PDBID)
				fmt.Printf("  prefix:     %s\n", t.Prefix)
				fmt.Printf("  box center: %g %g %g\n", t.BoxCenter[0], t.BoxCenter[1], t.BoxCenter[2])
				fmt.Printf("  box size:   %g %g %g\n", receptor.BoxSize[0], receptor.BoxSize[1], receptor.BoxSize[2])
			}
		},
	}
}
