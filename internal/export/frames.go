// Package export writes effects to files: a static SVG, an animated GIF, a
// PNG sequence, or anything else fed by [RenderFrames].
package export

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/rs/zerolog"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

const DefaultFPS = 30

// Backdrop is painted beneath every frame. A keyed backdrop is a marker
// color that downstream tools (and the GIF encoder) treat as transparent.
type Backdrop struct {
	Color color.Color
	Keyed bool
}

func Solid(c color.Color) Backdrop { return Backdrop{Color: c} }
func Key(c color.Color) Backdrop   { return Backdrop{Color: c, Keyed: true} }

// Job describes one timed render. Each job owns its state and surface.
type Job struct {
	Module   effect.Module
	Grid     *grid.Grid
	Params   param.Set
	Width    int
	Height   int
	FPS      int
	Duration float64
	Backdrop Backdrop
}

func (j Job) fps() int {
	if j.FPS <= 0 {
		return DefaultFPS
	}
	return j.FPS
}

// Frames is the number of frames the job renders, at least one.
func (j Job) Frames() int {
	n := int(math.Round(j.Duration * float64(j.fps())))
	if n < 1 {
		n = 1
	}
	return n
}

// FrameFunc receives each composited frame.
type FrameFunc func(i int, t float64, img *image.RGBA) error

// RenderFrames initializes the effect once and draws frame i at t = i/fps,
// compositing the backdrop after each draw. The context is checked before
// every frame.
func RenderFrames(ctx context.Context, j Job, fn FrameFunc) error {
	log := zerolog.Ctx(ctx)
	n := j.Frames()
	fps := float64(j.fps())
	bg := j.Backdrop.Color
	if bg == nil {
		bg = color.White
	}

	st := j.Module.Init(j.Grid, j.Params, j.Width, j.Height)
	dc := surface.New(j.Width, j.Height)

	log.Info().
		Str("effect", j.Module.Name()).
		Int("frames", n).
		Int("width", j.Width).
		Int("height", j.Height).
		Msg("rendering")

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("frame", i).Msg("render canceled")
			return fmt.Errorf("%w at frame %d: %w", ErrCanceled, i, err)
		}
		t := float64(i) / fps
		j.Module.DrawFrame(dc, st, t)
		img := surface.Composite(dc.Image(), bg)
		if err := fn(i, t, img); err != nil {
			return err
		}
		log.Debug().Int("frame", i).Float64("t", t).Msg("frame")
	}
	return nil
}
