package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/diskjockey/internal/history"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/desertthunder/diskjockey/internal/ui"
	"github.com/urfave/cli/v3"
)

// Delete removes a named top-level folder from the device.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("%w: folder name", shared.ErrMissingArgument)
	}

	release, err := r.inhibitor.Acquire(ctx)
	if err != nil {
		r.logger.Warn("could not acquire keep-awake", "err", err)
	}
	defer release()

	r.logger.Info("deleting folder", "folder", name)

	started := time.Now()
	deleted, err := r.folders.Delete(ctx, name)
	if err != nil {
		return err
	}

	if !deleted {
		r.writePlain("%s\n", ui.Warn(fmt.Sprintf("Folder %q not found on device.", name)))
		return nil
	}

	r.writePlain("Deleted %q.\n", name)

	r.recordRun(&history.Run{
		Action:     "delete",
		Folder:     name,
		Duration:   time.Since(started).Milliseconds(),
		StartedAt:  started,
		FinishedAt: time.Now(),
	})

	return nil
}

// List prints the device's top-level folders.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	release, err := r.inhibitor.Acquire(ctx)
	if err != nil {
		r.logger.Warn("could not acquire keep-awake", "err", err)
	}
	defer release()

	names, err := r.folders.List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(names, cmd.Bool("pretty"))
	}

	if len(names) == 0 {
		r.writePlain("No folders on device.\n")
		return nil
	}

	for _, name := range names {
		r.writePlain("%s\n", name)
	}
	return nil
}

// deleteCommand removes a folder from the device
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a top-level folder from the device",
		ArgsUsage: "<folderName>",
		Action:    r.Delete,
	}
}

// listCommand enumerates the device's top-level folders
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List top-level folders on the device",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.List,
	}
}
