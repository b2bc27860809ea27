package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/diskjockey/internal/shared"
)

func TestStartupConfig(t *testing.T) {
	t.Run("missing file uses defaults silently", func(t *testing.T) {
		logged := &bytes.Buffer{}

		config := startupConfig(filepath.Join(t.TempDir(), "config.toml"), shared.NewLogger(logged))

		if config.Device.MountPath != "/media/player" {
			t.Errorf("MountPath = %q, want the embedded default", config.Device.MountPath)
		}
		if logged.Len() != 0 {
			t.Errorf("unexpected log output: %q", logged.String())
		}
	})

	t.Run("valid file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[device]\nmount_path = \"/mnt/clip\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config := startupConfig(path, shared.NewLogger(&bytes.Buffer{}))

		if config.Device.MountPath != "/mnt/clip" {
			t.Errorf("MountPath = %q, want %q", config.Device.MountPath, "/mnt/clip")
		}
	})

	t.Run("malformed file warns and falls back", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[device\nmount_path ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		logged := &bytes.Buffer{}
		config := startupConfig(path, shared.NewLogger(logged))

		if config.Device.MountPath != "/media/player" {
			t.Errorf("MountPath = %q, want the embedded default", config.Device.MountPath)
		}
		if !strings.Contains(logged.String(), "using defaults") {
			t.Errorf("expected a warning about the unreadable config, got %q", logged.String())
		}
	})
}
