package cmd

import (
	"github.com/spf13/cobra"

	"metamorph.dev/pkg/metamorph/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List primitives and mutant counts",
		Long:  listLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := selectTargets()
			if err != nil {
				return err
			}

			return workflow.Estimate(cmd.Context(), domain.EstimateArgs{Targets: targets})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
