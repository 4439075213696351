package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.MaxDelta != 0.1 || cfg.TransitionDuration != 5.0 {
		t.Errorf("unexpected defaults: max_delta=%f transition=%f", cfg.MaxDelta, cfg.TransitionDuration)
	}
	if c := cfg.Cover(); c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0xff {
		t.Errorf("expected opaque black cover, got %v", c)
	}
}

func TestLoadFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choreo.yaml")
	data := "free_camera: true\ncover_color: MidnightBlue\ntime_scale: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := LoadFile(path, cfg); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !cfg.FreeCamera || cfg.TimeScale != 0.5 {
		t.Errorf("overlay not applied: %+v", cfg)
	}
	if cfg.Width != 1280 {
		t.Errorf("fields missing from the file should keep defaults, width=%d", cfg.Width)
	}
	if c := cfg.Cover(); c.B == 0 {
		t.Errorf("expected midnightblue, got %v", c)
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.MaxDelta = 0
	cfg.CoverColor = "not-a-colour"
	cfg.TPS = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"max_delta", "unknown colour", "tps"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}
