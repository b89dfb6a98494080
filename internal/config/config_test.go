package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scene != "orbit" {
		t.Errorf("expected scene orbit, got %s", cfg.Scene)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if got := cfg.OrbitFrames(); got != 240 {
		t.Errorf("expected 240 frames, got %d", got)
	}
	if got, want := cfg.OrbitOmega(), 40.0/65; got != want {
		t.Errorf("auto omega = %g, want %g", got, want)
	}
}

func TestOrbitOmegaExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbit.Omega = 2
	if got := cfg.OrbitOmega(); got != 2 {
		t.Errorf("expected explicit omega, got %g", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown scene", func(c *Config) { c.Scene = "nbody" }},
		{"zero mass", func(c *Config) { c.Binary.M1 = 0 }},
		{"no frames", func(c *Config) { c.Orbit.Duration = 0 }},
		{"negative scale", func(c *Config) { c.Render.VisualScale = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	want := GetPreset("gw151226")
	want.Render.Theme = "cyberpunk"
	want.Output.WAV = true

	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "scene: inspiral\nbinary:\n  m1: 20\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scene != "inspiral" || cfg.Binary.M1 != 20 {
		t.Errorf("file values not applied: %+v", cfg.Binary)
	}
	if cfg.Binary.M2 != DefaultConfig().Binary.M2 {
		t.Errorf("m2 = %g, want default", cfg.Binary.M2)
	}
	if cfg.Inspiral.MaxFrames != DefaultMaxFrames {
		t.Errorf("max_frames = %d, want default", cfg.Inspiral.MaxFrames)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("CHIRPSIM_BINARY_M2", "12.5")
	t.Setenv("CHIRPSIM_RENDER_THEME", "paper")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Binary.M2 != 12.5 {
		t.Errorf("m2 = %g, want 12.5 from environment", cfg.Binary.M2)
	}
	if cfg.Render.Theme != "paper" {
		t.Errorf("theme = %q, want paper", cfg.Render.Theme)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("gw190521")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Scene != "inspiral" || cfg.Binary.M1 != 95.3 || cfg.Inspiral.Omega0 != 5 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if cfg.Binary.Alpha != DefaultAlpha {
		t.Error("preset should keep default angles")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
