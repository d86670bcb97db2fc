package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"readmark/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	runner, err := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})
	if err != nil {
		logger.Fatalf("failed to initialize: %v", err)
	}
	defer runner.Close()

	app := &cli.Command{
		Name:     "readmark",
		Usage:    "Sync & browse your reading highlights library",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(errors.Unwrap(err), shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
