// Package cmd provides the root command and CLI setup for metamorph.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"metamorph.dev/pkg/metamorph/internal/adapter"
	"metamorph.dev/pkg/metamorph/internal/catalog"
	"metamorph.dev/pkg/metamorph/internal/controller"
	"metamorph.dev/pkg/metamorph/internal/domain"
	m "metamorph.dev/pkg/metamorph/internal/model"
)

var reportStore adapter.ReportStore
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// includePatterns and excludePatterns select primitives by label.
var includePatterns []string
var excludePatterns []string

var verboseFlag bool

// Sweep dimensions shared by run and list.
var (
	minSizeFlag int
	maxSizeFlag int
	sizeFlag    int
	trialsFlag  int
	seedFlag    uint64
)

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	reportStore = adapter.NewReportStore()
	workflow = domain.NewWorkflow(reportStore, ui)
}

const (
	sha3Pattern = "^SHA3-"
	kemPattern  = "^(ML-KEM|Kyber)"
)

const selectionHelp = `Primitives are selected by label with regular expressions:
  --include '` + sha3Pattern + `'                   only the SHA-3 family
  --include '` + kemPattern + `' -x 1024  every KEM except the 1024 parameter sets
Run "metamorph list" to see every label and its mutant count.`

const rootLongDescription = `Metamorph is a metamorphic testing engine for cryptographic primitives.
It derives mutated inputs from a base input (bit flips, streaming splits,
key corruptions, seed replays) and checks that each output keeps its
expected relation to the reference output.

` + selectionHelp

const runLongDescription = `Sweep every selected primitive with all of its strategies.

Hash functions are swept over input sizes (--min-size..--max-size, or
--size), key-encapsulation mechanisms over --trials independent keypairs.
The command fails when any relation is violated.

` + selectionHelp

const listLongDescription = `List the selected primitives with the number of mutants each strategy
will produce, without invoking any primitive.

` + selectionHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metamorph",
		Short: "Metamorphic testing for cryptographic primitives",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&reportsOutputDirFlag, outputFlagName, "o", viper.GetString(outputFlagName), "reports directory (empty disables saving)")
	bindFlagToConfig(flags.Lookup(outputFlagName), outputFlagName)

	flags.StringArrayVar(&includePatterns, includeFlagName, viper.GetStringSlice(includeConfigKey), "only primitives whose label matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(includeFlagName), includeConfigKey)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude primitives whose label matches regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.IntVar(&minSizeFlag, minSizeFlagName, viper.GetInt(runMinSizeConfigKey), "smallest hash input size in bytes")
	bindFlagToConfig(flags.Lookup(minSizeFlagName), runMinSizeConfigKey)

	flags.IntVar(&maxSizeFlag, maxSizeFlagName, viper.GetInt(runMaxSizeConfigKey), "largest hash input size in bytes")
	bindFlagToConfig(flags.Lookup(maxSizeFlagName), runMaxSizeConfigKey)

	flags.IntVar(&sizeFlag, sizeFlagName, viper.GetInt(runSizeConfigKey), "single hash input size in bytes, overrides the range when not negative")
	bindFlagToConfig(flags.Lookup(sizeFlagName), runSizeConfigKey)

	flags.IntVar(&trialsFlag, trialsFlagName, viper.GetInt(runTrialsConfigKey), "independent keypairs per KEM strategy")
	bindFlagToConfig(flags.Lookup(trialsFlagName), runTrialsConfigKey)

	flags.Uint64Var(&seedFlag, seedFlagName, viper.GetUint64(runSeedConfigKey), "seed for KEM keypair generation (0 picks a random one)")
	bindFlagToConfig(flags.Lookup(seedFlagName), runSeedConfigKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// sizeRange resolves the hash size range; a non-negative fixed size wins.
func sizeRange() m.Range {
	if size := viper.GetInt(runSizeConfigKey); size >= 0 {
		return m.Fixed(size)
	}

	return m.Range{
		Min: viper.GetInt(runMinSizeConfigKey),
		Max: viper.GetInt(runMaxSizeConfigKey),
	}
}

func catalogOptions() catalog.Options {
	return catalog.Options{
		Sizes:   sizeRange(),
		Trials:  viper.GetInt(runTrialsConfigKey),
		Seed:    viper.GetUint64(runSeedConfigKey),
		Include: viper.GetStringSlice(includeConfigKey),
		Exclude: viper.GetStringSlice(excludeConfigKey),
	}
}

func selectTargets() ([]domain.Target, error) {
	targets, err := catalog.Targets(catalogOptions())
	if err != nil {
		return nil, fmt.Errorf("select primitives: %w", err)
	}

	return targets, nil
}
