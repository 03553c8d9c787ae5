package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/reel/internal/shared"
	"github.com/desertthunder/reel/internal/ui"
	"github.com/urfave/cli/v3"
)

// Browse launches the interactive terminal UI for the library.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	library, err := r.requireLibrary()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	logPath := r.config.TUI.LogPath
	if logPath == "" {
		logPath = "./tmp/reel-tui.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, library, r.engine,
		ui.WithListTuning(r.config.TUI.ItemHeight, r.config.TUI.BufferItems, r.config.TUI.ScrollThreshold),
		ui.WithLogger(fileLogger))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
