// Package power manages the keep-awake resource held for the lifetime of a
// sync run, so the host cannot drift into sleep mid-transfer.
package power

import (
	"context"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"
)

// Inhibitor acquires an OS-level sleep inhibition. Acquire returns a release
// function that must be invoked exactly once per run; calling it more than
// once is safe and does nothing.
type Inhibitor interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// ExecInhibitor holds sleep inhibition by keeping a helper process alive for
// as long as the lock is held. Killing the helper drops the inhibition, so
// abnormal process death cannot leave the host unable to sleep.
type ExecInhibitor struct {
	logger *log.Logger
	path   string
	args   []string
}

// Noop is used when no platform inhibitor is available.
type Noop struct{}

// Acquire implements Inhibitor with no effect.
func (Noop) Acquire(ctx context.Context) (func(), error) {
	return func() {}, nil
}

// NewInhibitor picks the first available platform mechanism, falling back to
// a no-op when the host has none.
func NewInhibitor(logger *log.Logger) Inhibitor {
	if path, err := exec.LookPath("systemd-inhibit"); err == nil {
		args := []string{
			"--what=sleep:idle",
			"--who=diskjockey",
			"--why=syncing tracks to a removable player",
			"--mode=block",
			"sleep", "infinity",
		}
		return &ExecInhibitor{logger: logger, path: path, args: args}
	}

	if path, err := exec.LookPath("caffeinate"); err == nil {
		return &ExecInhibitor{logger: logger, path: path, args: []string{"-i"}}
	}

	if logger != nil {
		logger.Warn("no sleep inhibitor available, the host may sleep mid-transfer")
	}
	return Noop{}
}

// Acquire starts the helper process. The returned release kills it and is
// idempotent; the helper also dies with ctx, so signal-driven exits release
// the lock too.
func (e *ExecInhibitor) Acquire(ctx context.Context) (func(), error) {
	cmd := exec.CommandContext(ctx, e.path, e.args...)
	if err := cmd.Start(); err != nil {
		return func() {}, err
	}

	if e.logger != nil {
		e.logger.Debug("keep-awake acquired", "helper", e.path, "pid", cmd.Process.Pid)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			cmd.Process.Kill()
			cmd.Wait()
			if e.logger != nil {
				e.logger.Debug("keep-awake released")
			}
		})
	}

	return release, nil
}
