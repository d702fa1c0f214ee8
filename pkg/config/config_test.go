package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the stock values match the viewer's standard
// MPR setup.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Store.MaxSnapshots != 10 {
		t.Errorf("Expected maxSnapshots=10, got %d", cfg.Store.MaxSnapshots)
	}

	if len(cfg.Viewports.IDs) != 3 {
		t.Fatalf("Expected 3 viewports, got %d", len(cfg.Viewports.IDs))
	}
	if cfg.Viewports.IDs[0] != "mpr-axial" {
		t.Errorf("Expected first viewport mpr-axial, got %s", cfg.Viewports.IDs[0])
	}

	if cfg.Placement.CameraDistance != 352 {
		t.Errorf("Expected cameraDistance=352, got %f", cfg.Placement.CameraDistance)
	}

	if cfg.Tracking.Mode != "circular" {
		t.Errorf("Expected tracking mode circular, got %s", cfg.Tracking.Mode)
	}
	if cfg.Tracking.RateHz != 20 {
		t.Errorf("Expected rateHz=20, got %f", cfg.Tracking.RateHz)
	}
}

// TestLoadConfigMissingFile falls back to defaults when there is nothing to
// load.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Store.MaxSnapshots != 10 {
		t.Errorf("Expected defaults, got maxSnapshots=%d", cfg.Store.MaxSnapshots)
	}
}

// TestSaveLoadRoundTrip writes a modified config and reads it back.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "screwplanner.yaml")

	cfg := DefaultConfig()
	cfg.Store.MaxSnapshots = 5
	cfg.Tracking.Mode = "linear-axial"
	cfg.Viewports.IDs = []string{"mpr-axial"}

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Store.MaxSnapshots != 5 {
		t.Errorf("Expected maxSnapshots=5, got %d", loaded.Store.MaxSnapshots)
	}
	if loaded.Tracking.Mode != "linear-axial" {
		t.Errorf("Expected mode linear-axial, got %s", loaded.Tracking.Mode)
	}
	if len(loaded.Viewports.IDs) != 1 {
		t.Errorf("Expected 1 viewport, got %d", len(loaded.Viewports.IDs))
	}
}

// TestLoadConfigPartialFile keeps defaults for fields the file omits.
func TestLoadConfigPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "store:\n  maxSnapshots: 3\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Store.MaxSnapshots != 3 {
		t.Errorf("Expected maxSnapshots=3, got %d", cfg.Store.MaxSnapshots)
	}
	if cfg.Placement.CameraDistance != 352 {
		t.Errorf("Expected default cameraDistance, got %f", cfg.Placement.CameraDistance)
	}
}
