package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"readmark/internal/syncjob"
)

// SyncRun initiates a sync and blocks until the orchestrator reaches a
// terminal state, printing progress transitions along the way.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.loadSessionToken(); err != nil {
		return err
	}

	orch := r.newOrchestrator()
	defer orch.Close()

	orch.Start()

	var last syncjob.Status
	for {
		state := orch.State()
		if state.Status != last {
			last = state.Status
			r.logger.Info("sync", "status", state.Status, "message", state.Message)
		}

		switch state.Status {
		case syncjob.StatusCompleted:
			select {
			case <-orch.Reload():
			case <-ctx.Done():
				return ctx.Err()
			}
			return r.writePlainln("sync complete")
		case syncjob.StatusUpToDate:
			return r.writePlainln("library already up to date")
		case syncjob.StatusError:
			return fmt.Errorf("sync failed: %s", state.ErrorDetail)
		case syncjob.StatusIdle:
			if !state.IsSyncing {
				return r.writePlainln("nothing to sync")
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// SyncStatus fetches and prints the backend's current sync job state.
func (r *Runner) SyncStatus(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.loadSessionToken(); err != nil {
		return err
	}

	client := syncjob.NewClient(r.caller)
	status, err := client.SyncStatus(ctx, r.config.Sync.PollTimeout())
	if err != nil {
		return fmt.Errorf("failed to fetch sync status: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	line := fmt.Sprintf("status: %s", status.Status)
	if status.Message != "" {
		line += ": " + status.Message
	}
	if status.Progress != nil {
		line += fmt.Sprintf(" (%.0f%%)", *status.Progress)
	}
	return r.writePlainln("%s", line)
}
