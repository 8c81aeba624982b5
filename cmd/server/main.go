// stackslash runs and inspects procedurally streamed worlds.
//
// Usage:
//
//	stackslash serve              - Run the world server
//	stackslash view               - Walk a world in the terminal
//	stackslash sessions           - List recorded play sessions
//
// Global flags:
//
//	--config <path>  - Config file (default: search order)
//	--seed <value>   - World seed override
//	--saves <dir>    - Save directory override
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagSeed    int64
	flagSaveDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackslash",
	Short: "Deterministic streamed-world server and tools",
	Long: `stackslash serves a deterministic, seed-derived world over websockets
and ships local tools for walking and inspecting worlds.

Examples:
  stackslash serve --seed 42
  stackslash view --seed 42
  stackslash sessions --db sessions.db`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed override")
	rootCmd.PersistentFlags().StringVar(&flagSaveDir, "saves", "", "Save directory override")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(sessionsCmd)
}
