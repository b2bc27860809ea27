package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/urfave/cli/v3"
)

// startupConfig loads the config file at path when one exists. A file that
// exists but cannot be parsed is reported loudly before falling back, so a
// typo'd mount path never silently points the tool at the default one.
func startupConfig(path string, logger *log.Logger) *shared.Config {
	if _, err := os.Stat(path); err != nil {
		return shared.DefaultConfig()
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		logger.Warn("ignoring unreadable config, using defaults", "path", path, "err", err)
		return shared.DefaultConfig()
	}

	return config
}

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Config: startupConfig("config.toml", logger),
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "diskjockey",
		Usage:    "Sync track folders to a removable player that comes and goes",
		Version:  "0.3.0",
		Commands: runner.register(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// No verb: misuse, not a silent no-op.
			return fmt.Errorf("%w: expected one of copy, delete, list", shared.ErrMissingArgument)
		},
	}

	// Interrupts cancel the wait/retry loops; deferred releases still run on
	// this path, so the keep-awake lock never outlives the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
