package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"metamorph.dev/pkg/metamorph/internal/domain"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

var runParallelFlag int
var runExamplesFlag int

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run metamorphic testing",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, err := selectTargets()
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true

			return workflow.Run(cmd.Context(), domain.RunArgs{
				Targets:     targets,
				Threads:     viper.GetInt(runParallelConfigKey),
				MaxExamples: viper.GetInt(runExamplesConfigKey),
				Reports:     m.Path(viper.GetString(outputFlagName)),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of units swept in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.Flags().IntVar(&runExamplesFlag, examplesFlagName, viper.GetInt(runExamplesConfigKey), "violation examples kept per report")
	bindFlagToConfig(cmd.Flags().Lookup(examplesFlagName), runExamplesConfigKey)
}
