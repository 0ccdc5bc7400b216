package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"metamorph.dev/pkg/metamorph/internal/domain"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved reports",
		Long:  "View previously saved reports, with violation examples, from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
