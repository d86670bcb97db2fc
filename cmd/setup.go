package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"readmark/internal/shared"
)

// Setup creates the config file (if missing) and initializes the local database.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		r.logger.Warn("config file not created", "path", configPath, "err", err)
	} else {
		r.logger.Info("created config file", "path", configPath)
	}

	if _, err := r.openCoverStore(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	r.logger.Info("database ready", "path", r.config.Database.Path)

	return r.writePlainln("setup complete")
}
