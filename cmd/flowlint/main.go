package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/flowlint/flowlint/cmd/flowlint/commands"
	"github.com/spf13/cobra"
)

var version = "dev"

// getVersion returns the version, preferring the ldflags value over build info.
func getVersion() string {
	if version != "dev" {
		return version
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}

	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}

	return version
}

var rootCmd = &cobra.Command{
	Use:   "flowlint",
	Short: "Validate and visualize Arazzo workflows against their OpenAPI sources",
	Long: `flowlint cross-checks Arazzo workflow documents against the OpenAPI
documents they reference.

This CLI provides tools for:
- Validating workflow structure: cycles, unreachable steps, dead ends
- Validating consistency: operation references, parameter compatibility,
  data dependencies and step ordering
- Validating workflow input values against the declared input schemas
- Rendering workflow graphs as Mermaid, Graphviz DOT or JSON`,
	Version: getVersion(),
}

func init() {
	rootCmd.AddCommand(commands.GetValidateCommand())
	rootCmd.AddCommand(commands.GetVisualizeCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
