// Package app wires a world server process together: configuration, world
// restore, session recording, the hub tick loop, and the HTTP front end.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"stack-and-slash/server/internal/config"
	"stack-and-slash/server/internal/hub"
	servernet "stack-and-slash/server/internal/net"
	"stack-and-slash/server/internal/storage"
	"stack-and-slash/server/internal/worlddata"
)

// Options carries the command-line overrides applied on top of the loaded
// configuration file.
type Options struct {
	// ConfigPath, when set, is loaded instead of the default search order.
	ConfigPath string
	// Seed overrides the configured seed when non-zero.
	Seed int64
	// SaveDir overrides the configured save directory when non-empty.
	SaveDir string
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.SaveDir != "" {
		cfg.SaveDir = opts.SaveDir
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "stackslash",
	})

	world, result, err := loadWorld(cfg, logger)
	if err != nil {
		return err
	}
	if result.FromSave {
		logger.Infof("restored world %d from save (%d unknown records skipped)", cfg.Seed, result.Skipped)
	} else {
		logger.Infof("generated fresh world %d", cfg.Seed)
	}

	var store *storage.Store
	if cfg.SessionDB != "" {
		store, err = storage.Open(cfg.SessionDB)
		if err != nil {
			return fmt.Errorf("app: open session store: %w", err)
		}
		defer store.Close()
	}

	h := hub.New(world, hub.Config{
		TickRate: cfg.TickRate,
		Logger:   logger.WithPrefix("hub"),
		Store:    store,
	})
	stop := make(chan struct{})
	go h.Run(stop)
	// The session record is written on the hub goroutine after stop closes;
	// the store must still be open when it lands, so join before the deferred
	// store.Close runs.
	defer func() {
		close(stop)
		<-h.Done()
	}()

	handler := servernet.NewHTTPHandler(h, servernet.HTTPHandlerConfig{
		Logger: logger.WithPrefix("net"),
	})
	srv := &http.Server{Addr: cfg.Listen, Handler: handler}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", cfg.Listen)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown: %v", err)
		}
		return nil
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	}
}

// loadWorld restores the world for the configured seed, falling back to fresh
// generation when no save exists.
func loadWorld(cfg config.Config, logger *log.Logger) (*worlddata.WorldData, worlddata.LoadResult, error) {
	params := worlddata.Params{
		Radius:      cfg.Radius,
		EmptyWeight: cfg.EmptyWeight,
		SaveDir:     cfg.SaveDir,
		DebugChecks: cfg.DebugChecks,
		Logger:      logger.WithPrefix("world"),
	}
	world, result, err := worlddata.Load(cfg.Seed, params)
	if err != nil {
		return nil, worlddata.LoadResult{}, fmt.Errorf("app: load world: %w", err)
	}
	world.GenerateWorld()
	return world, result, nil
}
