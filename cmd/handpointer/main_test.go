package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/handpointer/internal/app"
	"github.com/ayusman/handpointer/internal/cursor"
	"github.com/ayusman/handpointer/internal/interpret"
)

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := loadSettings(options{camera: -1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Camera.Device != 0 {
			t.Errorf("Camera.Device = %d, want 0", s.Camera.Device)
		}
	})

	t.Run("camera flag overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yaml")
		if err := os.WriteFile(path, []byte("camera:\n  device: 2\n  fps: 60\n"), 0644); err != nil {
			t.Fatal(err)
		}

		s, err := loadSettings(options{configPath: path, camera: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Camera.Device != 1 {
			t.Errorf("Camera.Device = %d, want 1", s.Camera.Device)
		}
		if s.Camera.FPS != 60 {
			t.Errorf("Camera.FPS = %d, want 60", s.Camera.FPS)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadSettings(options{configPath: filepath.Join(t.TempDir(), "nope.yaml"), camera: -1})
		if err == nil {
			t.Error("expected error for missing settings file")
		}
	})
}

func TestOpenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	st := openStore(path)
	if st == nil {
		t.Fatal("openStore returned nil")
	}
	defer st.Close()

	if st.Path() != path {
		t.Errorf("Path() = %q, want %q", st.Path(), path)
	}
}

func TestTrayView(t *testing.T) {
	snap := app.Snapshot{
		Stats: interpret.Stats{
			Status:  interpret.StatusPointing,
			Clicks:  4,
			Scrolls: 2,
			Cursor:  cursor.Point{X: 959.5, Y: 1079},
		},
		Smoothing: 0.3,
	}

	got := trayView(snap, 1920, 1080)

	if got.Status != interpret.StatusPointing || got.Clicks != 4 || got.Scrolls != 2 {
		t.Errorf("counters not copied: %+v", got)
	}
	if got.CursorX != 50 || got.CursorY != 100 {
		t.Errorf("cursor = (%v, %v), want (50, 100)", got.CursorX, got.CursorY)
	}
	if got.Smoothing != 0.3 {
		t.Errorf("Smoothing = %v, want 0.3", got.Smoothing)
	}
}
