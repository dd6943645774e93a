package config

import (
	"os"

	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEffect   = "lines"
	DefaultWidth    = 800
	DefaultFPS      = 30
	DefaultDuration = 4.0
	DefaultBackdrop = "#ffffff"
	DefaultDataDir  = ".inkfield"
)

type Config struct {
	Effect  string `yaml:"effect"`
	Columns int    `yaml:"columns"`
	Width   int    `yaml:"width"`
	// Height 0 derives the height from the source aspect.
	Height   int     `yaml:"height"`
	FPS      int     `yaml:"fps"`
	Duration float64 `yaml:"duration"`
	Backdrop string  `yaml:"backdrop"`
	// KeyColor, when set, replaces the backdrop with a color key.
	KeyColor string         `yaml:"key_color,omitempty"`
	Params   map[string]any `yaml:"params,omitempty"`
	DataDir  string         `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Effect:   DefaultEffect,
		Columns:  grid.DefaultColumns,
		Width:    DefaultWidth,
		FPS:      DefaultFPS,
		Duration: DefaultDuration,
		Backdrop: DefaultBackdrop,
		Params:   map[string]any{},
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Size returns the output dimensions for g.
func (c *Config) Size(g *grid.Grid) (int, int) {
	w := c.Width
	if w <= 0 {
		w = DefaultWidth
	}
	if c.Height > 0 {
		return w, c.Height
	}
	return g.OutputSize(w)
}

// ParamSet returns the configured parameter overrides.
func (c *Config) ParamSet() param.Set {
	return param.Set(c.Params).Clone()
}

// Merge overlays the non-zero fields of o onto a copy of c. Params merge
// key by key.
func (c *Config) Merge(o *Config) *Config {
	out := c.clone()
	if o == nil {
		return out
	}
	if o.Effect != "" {
		out.Effect = o.Effect
	}
	if o.Columns > 0 {
		out.Columns = o.Columns
	}
	if o.Width > 0 {
		out.Width = o.Width
	}
	if o.Height > 0 {
		out.Height = o.Height
	}
	if o.FPS > 0 {
		out.FPS = o.FPS
	}
	if o.Duration > 0 {
		out.Duration = o.Duration
	}
	if o.Backdrop != "" {
		out.Backdrop = o.Backdrop
	}
	if o.KeyColor != "" {
		out.KeyColor = o.KeyColor
	}
	if o.DataDir != "" {
		out.DataDir = o.DataDir
	}
	for k, v := range o.Params {
		out.Params[k] = v
	}
	return out
}

func (c *Config) clone() *Config {
	out := *c
	out.Params = make(map[string]any, len(c.Params))
	for k, v := range c.Params {
		out.Params[k] = v
	}
	return &out
}
