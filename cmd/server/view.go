package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"stack-and-slash/server/internal/config"
	"stack-and-slash/server/internal/tui"
	"stack-and-slash/server/internal/worlddata"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Walk a world in the terminal",
	Long: `Open a local terminal viewer on the configured world. Movement runs the
same streaming logic the server uses, so the viewer doubles as a generation
debugger.

Examples:
  stackslash view --seed 42`,
	RunE: runView,
}

func runView(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagSaveDir != "" {
		cfg.SaveDir = flagSaveDir
	}

	params := worlddata.Params{
		Radius:      cfg.Radius,
		EmptyWeight: cfg.EmptyWeight,
		SaveDir:     cfg.SaveDir,
		DebugChecks: cfg.DebugChecks,
	}
	world, result, err := worlddata.Load(cfg.Seed, params)
	if err != nil {
		return err
	}
	world.GenerateWorld()
	if result.Skipped > 0 {
		fmt.Printf("warning: %d unknown save records skipped\n", result.Skipped)
	}

	program := tea.NewProgram(tui.NewModel(world), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
