package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.CameraID != 0 {
		t.Errorf("CameraID = %d, want 0", cfg.CameraID)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":8080")
	}
	if cfg.DataDir != dir {
		t.Errorf("DataDir = %q, want %q", cfg.DataDir, dir)
	}
	if cfg.MediaDir != filepath.Join(dir, "media") {
		t.Errorf("MediaDir = %q, want %q", cfg.MediaDir, filepath.Join(dir, "media"))
	}
	if cfg.MotionThreshold != 0.01 {
		t.Errorf("MotionThreshold = %f, want 0.01", cfg.MotionThreshold)
	}

	g := cfg.Gesture
	if g.PinchOn != 0.04 || g.PinchOff != 0.055 {
		t.Errorf("pinch hysteresis = %f/%f, want 0.04/0.055", g.PinchOn, g.PinchOff)
	}
	if g.HandTimeout != 500*time.Millisecond {
		t.Errorf("HandTimeout = %v, want 500ms", g.HandTimeout)
	}
	if g.ViewportWidth != 1280 || g.ViewportHeight != 720 {
		t.Errorf("viewport = %fx%f, want 1280x720", g.ViewportWidth, g.ViewportHeight)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()

	yaml := `listen_addr: ":9000"
camera_id: 2
gesture:
  pinch_on: 0.03
  anchor_weight: 0.9
  hand_timeout: 750ms
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":9000" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, ":9000")
	}
	if cfg.CameraID != 2 {
		t.Errorf("CameraID = %d, want 2", cfg.CameraID)
	}
	if cfg.Gesture.PinchOn != 0.03 {
		t.Errorf("PinchOn = %f, want 0.03", cfg.Gesture.PinchOn)
	}
	if cfg.Gesture.AnchorWeight != 0.9 {
		t.Errorf("AnchorWeight = %f, want 0.9", cfg.Gesture.AnchorWeight)
	}
	if cfg.Gesture.HandTimeout != 750*time.Millisecond {
		t.Errorf("HandTimeout = %v, want 750ms", cfg.Gesture.HandTimeout)
	}

	// Untouched keys keep their defaults.
	if cfg.Gesture.PinchOff != 0.055 {
		t.Errorf("PinchOff = %f, want default 0.055", cfg.Gesture.PinchOff)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("listen_addr: [broken"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed config file")
	}
}
