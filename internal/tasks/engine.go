package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/diskjockey/internal/device"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/desertthunder/diskjockey/internal/tracks"
)

// Item is one file to copy: an absolute local source path and its path
// relative to the task's destination root.
type Item struct {
	Source  string
	DestRel string
}

// Task is an immutable, ordered copy plan for a single invocation. Built
// once from the source directory and consumed item by item by the engine.
type Task struct {
	DestRoot string
	Items    []Item
}

// DeviceWaiter abstracts the device monitor so engine tests can simulate
// disconnects without a real mount point.
type DeviceWaiter interface {
	Probe() device.State
	WaitUntilWritable(ctx context.Context) error
}

// Result summarizes one completed copy run.
type Result struct {
	Total       int
	Copied      int
	Skipped     int
	BytesCopied int64
}

// Engine copies a task's files onto the device, tolerating disconnects at
// any point. See the package documentation for the state machine.
type Engine struct {
	monitor DeviceWaiter
	logger  *log.Logger
	verify  bool
}

// NewEngine creates an Engine using the given monitor for device checks.
// When verify is set, each copy is re-checked against the source size and
// redone on mismatch.
func NewEngine(monitor DeviceWaiter, logger *log.Logger, verify bool) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{monitor: monitor, logger: logger, verify: verify}
}

// BuildTask enumerates the files directly under sourceDir, orders them for
// playback, and returns the copy plan rooted at destRoot. Subdirectories of
// sourceDir are not descended into.
func BuildTask(sourceDir, destRoot string) (*Task, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrSourceNotFound, sourceDir)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	ordered := tracks.ComputeOrder(names)
	items := make([]Item, len(ordered))
	for i, name := range ordered {
		items[i] = Item{
			Source:  filepath.Join(sourceDir, name),
			DestRel: name,
		}
	}

	return &Task{DestRoot: destRoot, Items: items}, nil
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the full copy state machine for a task. Safe to re-run
// against a destination that already holds some or all of the files; those
// are skipped by the size check. Returns only on completion or ctx
// cancellation.
func (e *Engine) Run(ctx context.Context, task *Task, progress chan<- ProgressUpdate) (*Result, error) {
	result := &Result{Total: len(task.Items)}

	e.sendProgress(progress, awaitDeviceUpdate(result.Total))
	if err := e.monitor.WaitUntilWritable(ctx); err != nil {
		return result, err
	}

	e.sendProgress(progress, createFolderUpdate(result.Total, task.DestRoot))
	if err := e.ensureDestination(ctx, task); err != nil {
		return result, err
	}

	if err := e.copyAll(ctx, task, result, progress); err != nil {
		return result, err
	}

	e.sendProgress(progress, completeUpdate(result.Total))
	e.logger.Info("transfer complete",
		"copied", result.Copied, "skipped", result.Skipped, "bytes", result.BytesCopied)
	return result, nil
}

// ensureDestination creates the destination folder and any parents,
// retrying until it succeeds. A creation failure is read as a disconnect.
func (e *Engine) ensureDestination(ctx context.Context, task *Task) error {
	for {
		err := os.MkdirAll(task.DestRoot, 0755)
		if err == nil {
			return nil
		}
		e.logger.Warn("could not create destination, waiting for device", "dest", task.DestRoot, "err", err)

		if err := e.monitor.WaitUntilWritable(ctx); err != nil {
			return err
		}
	}
}

// copyAll walks the ordered file list once, never advancing past a file
// until it is confirmed present on the device.
func (e *Engine) copyAll(ctx context.Context, task *Task, result *Result, progress chan<- ProgressUpdate) error {
	completed := 0

	for _, item := range task.Items {
		dest := filepath.Join(task.DestRoot, item.DestRel)

		for {
			if e.monitor.Probe() != device.Writable {
				e.sendProgress(progress, awaitDeviceUpdate(result.Total))
				if err := e.monitor.WaitUntilWritable(ctx); err != nil {
					return err
				}
				continue
			}

			srcInfo, err := os.Stat(item.Source)
			if err != nil {
				return fmt.Errorf("%w: %s", shared.ErrSourceNotFound, item.Source)
			}

			if destInfo, err := os.Stat(dest); err == nil && destInfo.Size() == srcInfo.Size() {
				result.Skipped++
				completed++
				e.sendProgress(progress, skippedFileUpdate(completed, result.Total, item.DestRel))
				break
			}

			n, err := copyFile(item.Source, dest)
			if err != nil {
				e.logger.Warn("copy interrupted, waiting for device", "file", item.DestRel, "err", err)
				if err := e.monitor.WaitUntilWritable(ctx); err != nil {
					return err
				}
				continue
			}

			if e.verify {
				destInfo, err := os.Stat(dest)
				if err != nil || destInfo.Size() != srcInfo.Size() {
					e.logger.Warn("verification failed, recopying", "file", item.DestRel)
					if err := e.monitor.WaitUntilWritable(ctx); err != nil {
						return err
					}
					continue
				}
			}

			result.Copied++
			result.BytesCopied += n
			completed++
			e.sendProgress(progress, copiedFileUpdate(completed, result.Total, item.DestRel))
			break
		}
	}

	return nil
}

// copyFile copies src to dst in full, truncating any previous contents.
// The destination is synced before close so that a yanked device shows up
// as an error here rather than at an unrelated later write.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination: %w", err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, fmt.Errorf("failed to copy: %w", err)
	}

	if err := out.Sync(); err != nil {
		out.Close()
		return n, fmt.Errorf("failed to sync destination: %w", err)
	}

	if err := out.Close(); err != nil {
		return n, fmt.Errorf("failed to close destination: %w", err)
	}

	return n, nil
}
