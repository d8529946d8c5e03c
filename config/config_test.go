package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Hover.RideHeight != 2.8 || cfg.Hover.Strength != 900 || cfg.Hover.Damper != 60 || cfg.Hover.RayLength != 4.0 {
		t.Errorf("unexpected hover defaults: %+v", cfg.Hover)
	}
	if cfg.Movement.Acceleration != 125 || cfg.Movement.Deceleration != 10 || cfg.Movement.TopSpeed != 125 {
		t.Errorf("unexpected movement defaults: %+v", cfg.Movement)
	}
	if cfg.Patrol.DistanceThreshold != 0.2 {
		t.Errorf("patrol threshold = %v, want 0.2", cfg.Patrol.DistanceThreshold)
	}
	if cfg.Derived.StatsTicks != 600 {
		t.Errorf("StatsTicks = %d, want 600", cfg.Derived.StatsTicks)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "hover:\n  strength: 1200\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hover.Strength != 1200 {
		t.Errorf("strength = %v, want 1200", cfg.Hover.Strength)
	}
	// Untouched fields keep defaults
	if cfg.Hover.Damper != 60 {
		t.Errorf("damper = %v, want 60", cfg.Hover.Damper)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
		want    string
	}{
		{"negative ride height", "hover:\n  ride_height: -1\n", "ride_height"},
		{"zero ray length", "hover:\n  ray_length: 0\n", "ray_length"},
		{"negative threshold", "patrol:\n  distance_threshold: -0.5\n", "distance_threshold"},
		{"empty waypoints", "scene:\n  platforms:\n    - half_extents: [1, 1, 1]\n      waypoints: []\n", "no waypoints"},
		{"zero dt", "physics:\n  dt: 0\n", "physics.dt"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.Movement.TopSpeed = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Movement.TopSpeed != 42 {
		t.Errorf("top_speed = %v, want 42", loaded.Movement.TopSpeed)
	}
	if len(loaded.Scene.Platforms) != len(cfg.Scene.Platforms) {
		t.Errorf("platforms = %d, want %d", len(loaded.Scene.Platforms), len(cfg.Scene.Platforms))
	}
}
