package driver

import (
	"image"
	"time"

	"github.com/fogleman/gg"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

// Controller binds one effect to one grid, parameter set and surface. The
// state is rebuilt wholesale whenever any of them change.
type Controller struct {
	module effect.Module
	grid   *grid.Grid
	params param.Set
	w, h   int

	state  effect.State
	canvas *gg.Context
	clock  Clock
	paused bool
	last   float64
}

// New returns a controller. g may be nil until a grid is available.
func New(m effect.Module, g *grid.Grid, p param.Set, w, h int) *Controller {
	c := &Controller{module: m, params: param.Sanitize(m.Schema(), m.Params(p))}
	c.Reconstruct(m, g, w, h)
	return c
}

// Reconstruct swaps the effect, grid or size and restarts the clock.
// Parameters are carried over when the effect is unchanged.
func (c *Controller) Reconstruct(m effect.Module, g *grid.Grid, w, h int) {
	if m.ID != c.module.ID {
		c.params = m.Params(nil)
	}
	c.module = m
	c.grid = g
	c.w, c.h = w, h
	c.canvas = surface.New(w, h)
	c.clock.Reset()
	c.last = 0
	c.rebuild()
}

// Rebuild replaces the parameters and the state built from them. The clock
// keeps running.
func (c *Controller) Rebuild(p param.Set) {
	c.params = param.Sanitize(c.module.Schema(), c.module.Params(p))
	c.rebuild()
}

// Resize rebuilds the state and surface for new dimensions. The clock keeps
// running.
func (c *Controller) Resize(w, h int) {
	if w == c.w && h == c.h {
		return
	}
	c.w, c.h = w, h
	c.canvas = surface.New(w, h)
	c.rebuild()
}

func (c *Controller) rebuild() {
	c.state = nil
	if c.grid == nil {
		return
	}
	c.state = c.module.Init(c.grid, c.params, c.w, c.h)
}

// Ready returns the current state, or false while there is no grid.
func (c *Controller) Ready() (effect.State, bool) {
	if c.state == nil {
		return nil, false
	}
	return c.state, true
}

// Frame draws the effect at the clock's current reading and returns the
// surface image. While paused the last drawn time is reused.
func (c *Controller) Frame(now time.Time) (image.Image, bool) {
	st, ok := c.Ready()
	if !ok {
		return nil, false
	}
	t := c.clock.Elapsed(now)
	if c.paused {
		t = c.last
	}
	c.last = t
	c.module.DrawFrame(c.canvas, st, t)
	return c.canvas.Image(), true
}

// TogglePause freezes or unfreezes the drawn frame.
func (c *Controller) TogglePause() {
	c.paused = !c.paused
}

func (c *Controller) Paused() bool          { return c.paused }
func (c *Controller) Module() effect.Module { return c.module }
func (c *Controller) Grid() *grid.Grid      { return c.grid }
func (c *Controller) Time() float64         { return c.last }
func (c *Controller) Size() (int, int)      { return c.w, c.h }

// Params returns a copy of the active parameters.
func (c *Controller) Params() param.Set {
	return c.params.Clone()
}
