package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/inkfield/internal/grid"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Effect != "lines" {
		t.Errorf("expected effect lines, got %s", cfg.Effect)
	}
	if cfg.Columns != 300 {
		t.Errorf("expected 300 columns, got %d", cfg.Columns)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("stars", "night")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["twinkle"] != 0.9 {
		t.Errorf("expected twinkle 0.9, got %v", cfg.Params["twinkle"])
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("stars", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "night")
	if cfg != nil {
		t.Error("expected nil for nonexistent effect")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("lines", "fine")
	cfg.Params["lines"] = 1.0
	if again := GetPreset("lines", "fine"); again.Params["lines"] != 160.0 {
		t.Errorf("preset was mutated through a returned copy: %v", again.Params["lines"])
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"bold", "fine", "horizontal"}
	if diff := cmp.Diff(want, ListPresets("lines")); diff != "" {
		t.Errorf("ListPresets mismatch (-want +got):\n%s", diff)
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent effect")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkfield.yaml")
	cfg := DefaultConfig()
	cfg.Effect = "halftone"
	cfg.Height = 600
	cfg.KeyColor = "#00ff00"
	cfg.Params = map[string]any{"depth": 0.5, "color": "#222222"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := Save(path, &Config{Effect: "stars"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Effect != "stars" {
		t.Errorf("expected stars, got %s", cfg.Effect)
	}
	if cfg.Params == nil {
		t.Error("expected non-nil params")
	}
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	base.Params["lines"] = 40.0

	out := base.Merge(GetPreset("lines", "bold"))
	if out.Params["lines"] != 50.0 || out.Params["speed"] != 0.3 {
		t.Errorf("preset params not applied: %v", out.Params)
	}
	if out.Width != DefaultWidth {
		t.Errorf("unset preset field overwrote width: %d", out.Width)
	}
	if base.Params["lines"] != 40.0 {
		t.Error("merge mutated the receiver")
	}
}

func TestSize(t *testing.T) {
	g := grid.Uniform(300, 150, 1)
	cfg := DefaultConfig()

	tests := []struct {
		width, height int
		wantW, wantH  int
	}{
		{800, 0, 800, 400},
		{800, 300, 800, 300},
		{0, 0, DefaultWidth, 400},
	}
	for _, tt := range tests {
		cfg.Width, cfg.Height = tt.width, tt.height
		w, h := cfg.Size(g)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("width=%d height=%d: expected %dx%d, got %dx%d", tt.width, tt.height, tt.wantW, tt.wantH, w, h)
		}
	}
}
