package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/desertthunder/diskjockey/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a copy run.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	task, err := r.buildTask(cmd.Args().First())
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/diskjockey-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	release, err := r.inhibitor.Acquire(ctx)
	if err != nil {
		r.logger.Warn("could not acquire keep-awake", "err", err)
	}
	defer release()

	model := ui.NewModel(ctx, r.engine, task)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand launches the interactive copy view
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "tui",
		Usage:     "Copy a folder with an interactive progress view",
		ArgsUsage: "<sourceFolder>",
		Action:    r.TUI,
	}
}
