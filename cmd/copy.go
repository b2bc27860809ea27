package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/diskjockey/internal/history"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/desertthunder/diskjockey/internal/tasks"
	"github.com/desertthunder/diskjockey/internal/ui"
	"github.com/urfave/cli/v3"
)

// Copy syncs a local folder of tracks onto the device, waiting out any
// disconnects along the way.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	task, err := r.buildTask(cmd.Args().First())
	if err != nil {
		return err
	}

	if cmd.Bool("verify") && !r.config.Transfer.Verify {
		r.engine = tasks.NewEngine(r.monitor, r.logger, true)
	}

	release, err := r.inhibitor.Acquire(ctx)
	if err != nil {
		r.logger.Warn("could not acquire keep-awake", "err", err)
	}
	defer release()

	r.logger.Info("starting copy", "files", len(task.Items), "dest", task.DestRoot)

	// Render the bar in place; device waits and folder creation get their
	// own lines so the bar is not interleaved with status text.
	width := r.config.Transfer.Width()
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.AwaitDevice, tasks.CreateFolder:
				r.writePlain("%s\n", update.Message)
			case tasks.CopyFiles:
				r.writePlain("\r%s %s", ui.RenderBar(update.Step, update.Total, width), update.Message)
			case tasks.Complete:
				r.writePlain("\r%s\n", ui.RenderBar(update.Step, update.Total, width))
			}
		}
	}()

	started := time.Now()
	result, err := r.engine.Run(ctx, task, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader(ui.OK("Transfer Complete!"))
	r.writePlain("Destination: %s\n", task.DestRoot)
	r.writePlain("Copied: %d files (%d bytes)\n", result.Copied, result.BytesCopied)
	r.writePlain("Already on device: %d files\n", result.Skipped)

	r.recordRun(&history.Run{
		Action:       "copy",
		Folder:       task.DestRoot,
		FilesCopied:  result.Copied,
		FilesSkipped: result.Skipped,
		BytesCopied:  result.BytesCopied,
		Duration:     time.Since(started).Milliseconds(),
		StartedAt:    started,
		FinishedAt:   time.Now(),
	})

	return nil
}

// buildTask validates the source folder locally, before any device wait, and
// derives the ordered copy plan for it.
func (r *Runner) buildTask(source string) (*tasks.Task, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: source folder", shared.ErrMissingArgument)
	}

	info, err := os.Stat(source)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, source)
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrInvalidArgument, source)
	}

	destRoot := filepath.Join(r.config.Device.MountPath, filepath.Base(abs))
	return tasks.BuildTask(abs, destRoot)
}

// copyCommand syncs a local folder to the device
func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "copy",
		Usage:     "Copy a folder of tracks to the device in playback order",
		ArgsUsage: "<sourceFolder>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Re-check each file's size on the device after copying",
			},
		},
		Action: r.Copy,
	}
}
