package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Device   DeviceConfig   `toml:"device"`
	Transfer TransferConfig `toml:"transfer"`
	Database DatabaseConfig `toml:"database"`
}

// DeviceConfig identifies the removable player and controls how the tool polls for it.
type DeviceConfig struct {
	Name            string `toml:"name"`
	MountPath       string `toml:"mount_path"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
	WaitLogEvery    int    `toml:"wait_log_every"`
}

// TransferConfig contains copy and progress display settings.
type TransferConfig struct {
	BarWidth int  `toml:"bar_width"`
	Verify   bool `toml:"verify"`
}

// DatabaseConfig contains sync history database settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PollInterval returns the device poll cadence as a [time.Duration], defaulting to one second when unset.
func (d DeviceConfig) PollInterval() time.Duration {
	if d.PollIntervalSec <= 0 {
		return time.Second
	}
	return time.Duration(d.PollIntervalSec) * time.Second
}

// WaitLogInterval returns how often the "still waiting" notification fires
// while blocked on an absent device. Defaults to every five polls.
func (d DeviceConfig) WaitLogInterval() time.Duration {
	every := d.WaitLogEvery
	if every <= 0 {
		every = 5
	}
	return time.Duration(every) * d.PollInterval()
}

// Width returns the progress bar width in cells, defaulting to 50 when unset.
func (t TransferConfig) Width() int {
	if t.BarWidth <= 0 {
		return 50
	}
	return t.BarWidth
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
