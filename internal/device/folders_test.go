package device

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	tu "github.com/desertthunder/diskjockey/internal/testing"
)

func TestFoldersDelete(t *testing.T) {
	t.Run("deletes an existing folder recursively", func(t *testing.T) {
		mount := tu.TempMount(t)
		target := filepath.Join(mount, "Old Album")
		if err := os.MkdirAll(filepath.Join(target, "nested"), 0755); err != nil {
			t.Fatalf("failed to create folder: %v", err)
		}
		tu.WriteTrack(t, target, "track_1_of_2.mp3", 128)

		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		deleted, err := folders.Delete(context.Background(), "Old Album")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if !deleted {
			t.Error("Delete() = false, want true for existing folder")
		}
		if _, err := os.Stat(target); !os.IsNotExist(err) {
			t.Error("expected folder to be gone")
		}
	})

	t.Run("missing folder is a terminal non-error", func(t *testing.T) {
		mount := tu.TempMount(t)
		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		// A retry loop here would hang well past this deadline.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		deleted, err := folders.Delete(ctx, "Never Existed")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() = true, want false for missing folder")
		}
	})

	t.Run("folder name cannot escape the mount root", func(t *testing.T) {
		mount := tu.TempMount(t)
		outside := t.TempDir()
		victim := filepath.Join(outside, "keep")
		if err := os.Mkdir(victim, 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}

		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		deleted, err := folders.Delete(context.Background(), "../"+filepath.Base(outside)+"/keep")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if deleted {
			t.Error("Delete() = true for a path outside the mount root")
		}
		tu.AssertDirExists(t, victim)
	})

	t.Run("cancellation unblocks waiting for an absent device", func(t *testing.T) {
		mount := filepath.Join(t.TempDir(), "never-mounted")
		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		if _, err := folders.Delete(ctx, "Anything"); err != context.Canceled {
			t.Errorf("Delete() error = %v, want context.Canceled", err)
		}
	})
}

func TestFoldersList(t *testing.T) {
	t.Run("lists only immediate subdirectories", func(t *testing.T) {
		mount := tu.TempMount(t)
		for _, name := range []string{"Albums", "Audiobooks", "Podcasts"} {
			if err := os.MkdirAll(filepath.Join(mount, name, "inner"), 0755); err != nil {
				t.Fatalf("failed to create folder: %v", err)
			}
		}
		tu.WriteTrack(t, mount, "stray.mp3", 16)

		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		names, err := folders.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}

		sort.Strings(names)
		want := []string{"Albums", "Audiobooks", "Podcasts"}
		if !reflect.DeepEqual(names, want) {
			t.Errorf("List() = %v, want %v", names, want)
		}
	})

	t.Run("empty device lists no folders", func(t *testing.T) {
		mount := tu.TempMount(t)
		folders := NewFolders(NewMonitor(testConfig(mount), nil), nil)

		names, err := folders.List(context.Background())
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(names) != 0 {
			t.Errorf("List() = %v, want empty", names)
		}
	})
}
