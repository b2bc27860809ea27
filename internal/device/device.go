// package device watches a removable player's mount point and performs
// destructive folder operations against it.
//
// Devices are transient: every check stats the mount point fresh and nothing
// is cached between operations. A device that vanishes mid-operation is
// normal, not exceptional.
package device

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/diskjockey/internal/shared"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// State describes what a single probe found at the mount point.
type State int

const (
	// Absent means the mount path does not exist or is not a directory.
	Absent State = iota
	// ReadOnly means the mount path exists but a trial write failed.
	ReadOnly
	// Writable means the mount path exists and accepted a trial write.
	Writable
)

func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case ReadOnly:
		return "read-only"
	case Writable:
		return "writable"
	default:
		return ""
	}
}

// Monitor probes for device availability and blocks until the player is
// connected and writable.
type Monitor struct {
	cfg     shared.DeviceConfig
	logger  *log.Logger
	waitLog *rate.Limiter
}

// NewMonitor creates a Monitor for the configured device.
func NewMonitor(cfg shared.DeviceConfig, logger *log.Logger) *Monitor {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Monitor{
		cfg:     cfg,
		logger:  logger,
		waitLog: rate.NewLimiter(rate.Every(cfg.WaitLogInterval()), 1),
	}
}

// MountPath returns the configured mount point for the device.
func (m *Monitor) MountPath() string {
	return m.cfg.MountPath
}

// Probe checks the mount point once. The device counts as writable only when
// the mount path is a directory and a throwaway marker file can be created
// and removed inside it. Probe never returns an error: any failure reads as
// an unusable device.
func (m *Monitor) Probe() State {
	info, err := os.Stat(m.cfg.MountPath)
	if err != nil || !info.IsDir() {
		return Absent
	}

	marker := filepath.Join(m.cfg.MountPath, ".diskjockey-"+uuid.New().String())
	if err := os.WriteFile(marker, nil, 0644); err != nil {
		return ReadOnly
	}
	os.Remove(marker)

	return Writable
}

// WaitUntilWritable blocks until a probe reports Writable, polling at the
// configured interval. There is no timeout; the only way out short of the
// device appearing is ctx cancellation. A throttled "still waiting" notice
// keeps unattended runs observable.
func (m *Monitor) WaitUntilWritable(ctx context.Context) error {
	if m.Probe() == Writable {
		return nil
	}

	m.logger.Info("waiting for device", "name", m.cfg.Name, "mount", m.cfg.MountPath)

	ticker := time.NewTicker(m.cfg.PollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if state := m.Probe(); state == Writable {
				m.logger.Info("device ready", "name", m.cfg.Name)
				return nil
			} else if m.waitLog.Allow() {
				m.logger.Info("still waiting for device", "name", m.cfg.Name, "state", state)
			}
		}
	}
}
