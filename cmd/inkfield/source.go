package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/rs/zerolog"
	"github.com/san-kum/inkfield/internal/config"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/export"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/sampler"
	"github.com/san-kum/inkfield/internal/storage"
	"github.com/spf13/cobra"
)

// resolveConfig layers defaults, the config file, a preset and finally the
// flags the user actually set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("effect") {
		cfg.Effect = effectName
	}

	if preset != "" {
		p := config.GetPreset(cfg.Effect, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Effect))
		}
		cfg = cfg.Merge(p)
	}

	if flags.Changed("columns") {
		cfg.Columns = columns
	}
	if flags.Changed("width") {
		cfg.Width = outWidth
	}
	if flags.Changed("height") {
		cfg.Height = outHeight
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("backdrop") {
		cfg.Backdrop = backdrop
	}
	if flags.Changed("key") {
		cfg.KeyColor = keyColor
	}
	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	overrides, err := parseParams(paramFlags)
	if err != nil {
		return nil, err
	}
	for k, v := range overrides {
		cfg.Params[k] = v
	}
	return cfg, nil
}

// parseParams reads key=value pairs. Values that parse as numbers become
// float64; everything else is kept as a string.
func parseParams(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (want key=value)", pair)
		}
		value = strings.TrimSpace(value)
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			out[key] = f
			continue
		}
		out[key] = value
	}
	return out, nil
}

// moduleParams merges p over the module defaults and clamps every numeric
// value into its schema range.
func moduleParams(m effect.Module, p param.Set) param.Set {
	return param.Sanitize(m.Schema(), m.Params(p))
}

// warnUnknown logs override keys the module has no default for; they reach
// the effect but nothing reads them.
func warnUnknown(ctx context.Context, m effect.Module, p param.Set) {
	defaults := m.Defaults()
	for _, k := range p.Keys() {
		if _, ok := defaults[k]; !ok {
			zerolog.Ctx(ctx).Warn().Str("effect", m.Name()).Str("param", k).Msg("unknown parameter")
		}
	}
}

// loadGrid samples --svg or loads --grid from the store.
func loadGrid(ctx context.Context, cfg *config.Config) (*grid.Grid, error) {
	switch {
	case svgPath != "" && gridID != "":
		return nil, errors.New("use either --svg or --grid, not both")
	case svgPath != "":
		return sampler.Load(ctx, svgPath, cfg.Columns)
	case gridID != "":
		g, err := storage.New(cfg.DataDir).LoadGrid(gridID)
		if err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().Str("grid", gridID).Int("cols", g.Cols).Int("rows", g.Rows).Msg("grid loaded")
		return g, nil
	default:
		return nil, errors.New("no source: pass --svg <file> or --grid <id>")
	}
}

func parseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

func exportBackdrop(cfg *config.Config) (export.Backdrop, error) {
	if cfg.KeyColor != "" {
		c, err := parseColor(cfg.KeyColor)
		if err != nil {
			return export.Backdrop{}, err
		}
		return export.Key(c), nil
	}
	c, err := parseColor(cfg.Backdrop)
	if err != nil {
		return export.Backdrop{}, err
	}
	return export.Solid(c), nil
}

func outputPath(cfg *config.Config, ext string) string {
	if output != "" {
		return output
	}
	return cfg.Effect + ext
}
