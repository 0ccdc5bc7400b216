package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
	"metamorph.dev/pkg/metamorph/internal/catalog"
)

// primitiveModules provide the implementations under test; their versions
// belong next to any reported violation.
var primitiveModules = []string{
	"github.com/cloudflare/circl",
	"github.com/zeebo/blake3",
	"golang.org/x/crypto",
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the build version, the Go version, and the versions of the modules
providing the primitives under test.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info, _ := debug.ReadBuildInfo()
			printVersion(cmd, info)
		},
	}
}

func printVersion(cmd *cobra.Command, info *debug.BuildInfo) {
	cmd.Printf("primitives\t %d hashes, %d KEMs\n", len(catalog.Hashes()), len(catalog.KEMs()))

	if info == nil || info.Main.Version == "" {
		cmd.Println("version: unknown")
		return
	}

	cmd.Println("metamorph version\t", info.Main.Version)
	cmd.Println("go version\t", info.GoVersion)

	for _, dep := range info.Deps {
		for _, path := range primitiveModules {
			if dep.Path == path {
				cmd.Println(dep.Path+"\t", dep.Version)
			}
		}
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
