package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"metamorph.dev/pkg/metamorph/internal/catalog"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default metamorph.yaml configuration file",
		Long: `Create a metamorph.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s (%d primitives, %d trials per KEM strategy)\n",
				targetPath, len(catalog.All()), viper.GetInt(runTrialsConfigKey))

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
