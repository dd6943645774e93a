package config

import "sort"

// Presets holds named parameter sets per effect. Only the fields a preset
// sets are meaningful; apply one with Config.Merge.
var Presets = map[string]map[string]*Config{
	"lines": {
		"fine": {
			Effect: "lines",
			Params: map[string]any{"lines": 160.0, "minWidth": 0.3, "maxWidth": 1.2},
		},
		"bold": {
			Effect: "lines",
			Params: map[string]any{"lines": 50.0, "minWidth": 1.5, "maxWidth": 5.0, "speed": 0.3},
		},
		"horizontal": {
			Effect: "lines",
			Params: map[string]any{"orientation": 1.0, "frequency": 0.4},
		},
	},
	"ellipses": {
		"dots": {
			Effect: "ellipses",
			Params: map[string]any{"eccentricity": 1.0, "pulse": 0.1},
		},
		"ripple": {
			Effect: "ellipses",
			Params: map[string]any{"pulse": 0.6, "phaseStep": 0.8, "speed": 0.8},
		},
	},
	"particles": {
		"dust": {
			Effect: "particles",
			Params: map[string]any{"count": 12000.0, "minRadius": 0.3, "maxRadius": 1.0},
		},
		"bubbles": {
			Effect: "particles",
			Params: map[string]any{"count": 1500.0, "minRadius": 1.0, "maxRadius": 5.0, "pulse": 0.5},
		},
	},
	"stars": {
		"night": {
			Effect:   "stars",
			Backdrop: "#0b1026",
			Params:   map[string]any{"color": "#fff8e0", "background": "#0b1026", "twinkle": 0.9},
		},
		"dense": {
			Effect: "stars",
			Params: map[string]any{"columns": 90.0, "jitter": 0.2},
		},
	},
	"halftone": {
		"engraving": {
			Effect: "halftone",
			Params: map[string]any{"samples": 300.0, "frequency": 12.0, "depth": 0.5},
		},
		"flat": {
			Effect: "halftone",
			Params: map[string]any{"depth": 0.0},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(effect, preset string) *Config {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	cfg, ok := effectPresets[preset]
	if !ok {
		return nil
	}
	return cfg.clone()
}

func ListPresets(effect string) []string {
	effectPresets, ok := Presets[effect]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(effectPresets))
	for name := range effectPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
