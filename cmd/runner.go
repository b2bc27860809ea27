package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/diskjockey/internal/device"
	"github.com/desertthunder/diskjockey/internal/history"
	"github.com/desertthunder/diskjockey/internal/power"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/desertthunder/diskjockey/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config    *shared.Config
	monitor   *device.Monitor
	folders   *device.Folders
	engine    *tasks.Engine
	inhibitor power.Inhibitor
	logger    *log.Logger
	output    io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config    *shared.Config
	Monitor   *device.Monitor
	Folders   *device.Folders
	Engine    *tasks.Engine
	Inhibitor power.Inhibitor
	Logger    *log.Logger
	Output    io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Monitor == nil {
		opts.Monitor = device.NewMonitor(opts.Config.Device, opts.Logger)
	}
	if opts.Folders == nil {
		opts.Folders = device.NewFolders(opts.Monitor, opts.Logger)
	}
	if opts.Engine == nil {
		opts.Engine = tasks.NewEngine(opts.Monitor, opts.Logger, opts.Config.Transfer.Verify)
	}
	if opts.Inhibitor == nil {
		opts.Inhibitor = power.NewInhibitor(opts.Logger)
	}

	return &Runner{
		config:    opts.Config,
		monitor:   opts.Monitor,
		folders:   opts.Folders,
		engine:    opts.Engine,
		inhibitor: opts.Inhibitor,
		logger:    opts.Logger,
		output:    opts.Output,
	}
}

// SetLogger swaps the Runner's logger and rebuilds the device stack around
// it, so components constructed with the old logger don't keep writing to
// the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.monitor = device.NewMonitor(r.config.Device, logger)
	r.folders = device.NewFolders(r.monitor, logger)
	r.engine = tasks.NewEngine(r.monitor, logger, r.config.Transfer.Verify)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		copyCommand, deleteCommand, listCommand, tuiCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openHistory opens the sync history database, running migrations on first
// use. Callers get a cleanup func alongside the repository.
func (r *Runner) openHistory() (*history.RunRepository, func(), error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return history.NewRunRepository(db), func() { db.Close() }, nil
}

// recordRun persists a run to the history database. History is best-effort:
// a broken database must not fail a sync that already happened.
func (r *Runner) recordRun(run *history.Run) {
	repo, cleanup, err := r.openHistory()
	if err != nil {
		r.logger.Warn("skipping history record", "err", err)
		return
	}
	defer cleanup()

	if err := repo.Create(run); err != nil {
		r.logger.Warn("failed to record run", "err", err)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
