package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	t.Run("device section", func(t *testing.T) {
		if config.Device.Name != "SANSA CLIP" {
			t.Errorf("Device.Name = %q, want %q", config.Device.Name, "SANSA CLIP")
		}
		if config.Device.MountPath != "/media/player" {
			t.Errorf("Device.MountPath = %q, want %q", config.Device.MountPath, "/media/player")
		}
		if config.Device.PollIntervalSec != 1 {
			t.Errorf("Device.PollIntervalSec = %d, want 1", config.Device.PollIntervalSec)
		}
	})

	t.Run("transfer section", func(t *testing.T) {
		if config.Transfer.BarWidth != 50 {
			t.Errorf("Transfer.BarWidth = %d, want 50", config.Transfer.BarWidth)
		}
		if config.Transfer.Verify {
			t.Error("Transfer.Verify = true, want false by default")
		}
	})

	t.Run("database section", func(t *testing.T) {
		if config.Database.Path != "diskjockey.db" {
			t.Errorf("Database.Path = %q, want %q", config.Database.Path, "diskjockey.db")
		}
		if config.Database.MaxOpenConns != 5 {
			t.Errorf("Database.MaxOpenConns = %d, want 5", config.Database.MaxOpenConns)
		}
	})
}

func TestDeviceConfigDurations(t *testing.T) {
	tests := []struct {
		name        string
		config      DeviceConfig
		wantPoll    time.Duration
		wantWaitLog time.Duration
	}{
		{"configured values", DeviceConfig{PollIntervalSec: 2, WaitLogEvery: 3}, 2 * time.Second, 6 * time.Second},
		{"zero poll falls back to a second", DeviceConfig{WaitLogEvery: 4}, time.Second, 4 * time.Second},
		{"zero wait log falls back to five polls", DeviceConfig{PollIntervalSec: 2}, 2 * time.Second, 10 * time.Second},
		{"all defaults", DeviceConfig{}, time.Second, 5 * time.Second},
		{"negative values fall back", DeviceConfig{PollIntervalSec: -1, WaitLogEvery: -1}, time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.PollInterval(); got != tt.wantPoll {
				t.Errorf("PollInterval() = %v, want %v", got, tt.wantPoll)
			}
			if got := tt.config.WaitLogInterval(); got != tt.wantWaitLog {
				t.Errorf("WaitLogInterval() = %v, want %v", got, tt.wantWaitLog)
			}
		})
	}
}

func TestTransferConfigWidth(t *testing.T) {
	if got := (TransferConfig{BarWidth: 30}).Width(); got != 30 {
		t.Errorf("Width() = %d, want 30", got)
	}
	if got := (TransferConfig{}).Width(); got != 50 {
		t.Errorf("Width() = %d, want default 50", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[device]
name = "CLIP ZIP"
mount_path = "/mnt/clip"
poll_interval_sec = 3

[transfer]
bar_width = 40
verify = true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.Device.Name != "CLIP ZIP" {
			t.Errorf("Device.Name = %q, want %q", config.Device.Name, "CLIP ZIP")
		}
		if config.Device.MountPath != "/mnt/clip" {
			t.Errorf("Device.MountPath = %q, want %q", config.Device.MountPath, "/mnt/clip")
		}
		if !config.Transfer.Verify {
			t.Error("Transfer.Verify = false, want true")
		}
		if config.Transfer.BarWidth != 40 {
			t.Errorf("Transfer.BarWidth = %d, want 40", config.Transfer.BarWidth)
		}
	})

	t.Run("missing file is an error", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("LoadConfig() = nil error for missing file")
		}
	})

	t.Run("malformed TOML is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[device\nname="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig() = nil error for malformed TOML")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile() error = %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if config.Device.MountPath != "/media/player" {
			t.Errorf("Device.MountPath = %q, want the embedded default", config.Device.MountPath)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# mine"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("CreateConfigFile() = nil error for existing file")
		}
		if got := string(mustRead(t, path)); got != "# mine" {
			t.Errorf("existing file was modified: %q", got)
		}
	})
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return data
}
