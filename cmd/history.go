package main

import (
	"context"
	"time"

	"github.com/desertthunder/diskjockey/internal/ui"
	"github.com/urfave/cli/v3"
)

// History lists past sync runs recorded in the local database.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	repo, cleanup, err := r.openHistory()
	if err != nil {
		return err
	}
	defer cleanup()

	runs, err := repo.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(runs, cmd.Bool("pretty"))
	}

	if len(runs) == 0 {
		r.writePlain("No recorded runs.\n")
		return nil
	}

	r.writePlainHeader(ui.Title("Sync History"))
	for _, run := range runs {
		r.writePlain("%s  %-6s  %s", run.StartedAt.Format(time.DateTime), run.Action, run.Folder)
		if run.Action == "copy" {
			r.writePlain("  (%d copied, %d skipped, %d bytes)", run.FilesCopied, run.FilesSkipped, run.BytesCopied)
		}
		r.writePlain("\n")
	}

	return nil
}

// historyCommand inspects recorded sync runs
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show past sync runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of runs to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
	}
}
