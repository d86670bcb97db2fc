package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"readmark/internal/shared"
	"readmark/internal/ui"
)

// TUI launches the interactive sync view.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.loadSessionToken(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/readmark-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	orch := r.newOrchestrator()
	defer orch.Close()

	model := ui.NewModel(ctx, orch, r.library)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
