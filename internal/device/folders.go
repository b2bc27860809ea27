package device

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/diskjockey/internal/shared"
)

// Folders performs top-level folder operations on the device with the same
// disconnect tolerance as the transfer engine: device-side failures are
// waited out and retried, never surfaced.
type Folders struct {
	monitor *Monitor
	logger  *log.Logger
}

// NewFolders creates a Folders bound to the given monitor.
func NewFolders(monitor *Monitor, logger *log.Logger) *Folders {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Folders{monitor: monitor, logger: logger}
}

// Delete removes the named top-level folder from the device, retrying until
// the folder is gone. Returns false with a nil error when the folder never
// existed; a folder that disappears after a partial delete counts as deleted.
func (f *Folders) Delete(ctx context.Context, name string) (bool, error) {
	target := filepath.Join(f.monitor.MountPath(), filepath.Base(name))
	existed := false

	for {
		if err := f.monitor.WaitUntilWritable(ctx); err != nil {
			return existed, err
		}

		if _, err := os.Stat(target); err != nil {
			return existed, nil
		}
		existed = true

		if err := os.RemoveAll(target); err != nil {
			f.logger.Warn("delete failed, retrying", "folder", name, "err", err)
			if err := pause(ctx, f.monitor.cfg.PollInterval()); err != nil {
				return existed, err
			}
			continue
		}

		return true, nil
	}
}

// List enumerates the immediate subdirectories of the mount root, retrying
// the whole enumeration until one pass succeeds.
func (f *Folders) List(ctx context.Context) ([]string, error) {
	for {
		if err := f.monitor.WaitUntilWritable(ctx); err != nil {
			return nil, err
		}

		entries, err := os.ReadDir(f.monitor.MountPath())
		if err != nil {
			f.logger.Warn("listing failed, retrying", "err", err)
			if err := pause(ctx, f.monitor.cfg.PollInterval()); err != nil {
				return nil, err
			}
			continue
		}

		names := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}
		return names, nil
	}
}

// pause sleeps for one poll interval or until ctx is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
