package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/stacksync/internal/repositories"
	"github.com/desertthunder/stacksync/internal/shared"
	"github.com/urfave/cli/v3"
)

const configPath = "config.toml"

func main() {
	logger := shared.NewLogger(nil)

	config, err := shared.LoadConfigOrDefault(configPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		config = shared.DefaultConfig()
	}

	if level, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, level)
	}

	var store *repositories.RunRepository
	if config.History.Enabled {
		if db, err := shared.OpenStore(config.Database); err != nil {
			logger.Warn("run history unavailable", "path", config.Database.Path, "error", err)
		} else {
			defer db.Close()
			store = repositories.NewRunRepository(db)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Store:      store,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "stx",
		Usage:    "Plan frontend & backend work from a design and keep both implementations in sync",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
