package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stack-and-slash/server/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the world server",
	Long: `Start the tick loop and the websocket observer endpoint for one world.
The world is restored from its save file when one exists for the seed.

Examples:
  stackslash serve
  stackslash serve --seed 42 --saves /var/lib/stackslash`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx, app.Options{
		ConfigPath: flagConfig,
		Seed:       flagSeed,
		SaveDir:    flagSaveDir,
	})
}
