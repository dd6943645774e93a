// Package particles scatters dots over the artwork by weighted sampling of
// grid cells. Dark cells attract more dots; a floor weight keeps empty
// regions lightly populated.
package particles

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/mathx"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

//go:embed particles.js
var script string

// phaseSalt derives the phase sequence seed from the position seed so the
// two sequences stay independent.
const phaseSalt = 0x9E3779B9

var (
	defaultInk        = colorful.Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Particles,
		Title:     "Particle Scatter",
		Defaults:  Defaults,
		Schema:    Schema,
		Generate:  Generate,
		Init:      Init,
		DrawFrame: DrawFrame,
		Script:    script,
	}
}

// Defaults includes the internal "seed" key, which is not part of Schema.
func Defaults() param.Set {
	return param.Set{
		"count":      4000.0,
		"power":      2.0,
		"floor":      0.02,
		"scatter":    1.0,
		"minRadius":  0.4,
		"maxRadius":  2.2,
		"pulse":      0.35,
		"speed":      0.8,
		"seed":       1337.0,
		"color":      "#111111",
		"background": "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "count", Label: "Particles", Min: 100, Max: 20000, Step: 100, Default: d["count"]},
		{Key: "power", Label: "Contrast", Min: 0.5, Max: 4, Step: 0.1, Default: d["power"]},
		{Key: "floor", Label: "Background density", Min: 0, Max: 0.2, Step: 0.005, Default: d["floor"]},
		{Key: "scatter", Label: "Scatter", Min: 0, Max: 3, Step: 0.05, Default: d["scatter"]},
		{Key: "minRadius", Label: "Min radius", Min: 0.1, Max: 6, Step: 0.1, Default: d["minRadius"]},
		{Key: "maxRadius", Label: "Max radius", Min: 0.1, Max: 6, Step: 0.1, Default: d["maxRadius"]},
		{Key: "pulse", Label: "Pulse", Min: 0, Max: 1, Step: 0.01, Default: d["pulse"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type particle struct {
	x, y   float64
	radius float64
	phase  float64
}

type state struct {
	particles []particle
	pulse     float64
	speed     float64
	ink       color.Color
}

// weights builds the cumulative weight table over grid cells in row-major
// order.
func weights(g *grid.Grid, power, floor float64) []float64 {
	cum := make([]float64, g.Cols*g.Rows)
	total := 0.0
	for k := range cum {
		d := 1 - g.At(k%g.Cols, k/g.Cols)
		total += math.Pow(d, power) + floor
		cum[k] = total
	}
	return cum
}

// layout has no darkness cutoff: the weight floor alone decides how often
// pale cells are picked, so an all-white grid still scatters particles.
func layout(g *grid.Grid, p param.Set, w, h int) []particle {
	cum := weights(g, p.Float("power"), math.Max(0, p.Float("floor")))
	total := cum[len(cum)-1]
	if !(total > 0) {
		return nil
	}

	count := p.Int("count", 0)
	scatter := p.Float("scatter")
	lo, hi := p.Range("minRadius", "maxRadius")
	seed := uint32(p.Int("seed", 0))
	next := mathx.SeededRandom(seed)
	nextPhase := mathx.SeededRandom(seed ^ phaseSalt)

	out := make([]particle, 0, count)
	for n := 0; n < count; n++ {
		r := next() * total
		k := sort.Search(len(cum), func(i int) bool { return cum[i] > r })
		if k >= len(cum) {
			k = len(cum) - 1
		}
		cx, cy := float64(k%g.Cols), float64(k/g.Cols)
		u := mathx.Clamp((cx+0.5+(next()-0.5)*scatter)/float64(g.Cols), 0, 1)
		v := mathx.Clamp((cy+0.5+(next()-0.5)*scatter)/float64(g.Rows), 0, 1)
		phase := nextPhase() * 2 * math.Pi

		out = append(out, particle{
			x:      u * float64(w),
			y:      v * float64(h),
			radius: mathx.Lerp(lo, hi, g.Darkness(u, v)),
			phase:  phase,
		})
	}
	return out
}

// Radius is a particle's radius at time t.
func Radius(base, pulse, speed, phase, t float64) float64 {
	return base * (1 + pulse*math.Sin(2*math.Pi*speed*t+phase))
}

func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	pulse, speed := p.Float("pulse"), p.Float("speed")

	doc := effect.NewDocument(w, h, "particles", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("fill:%s", p.Hex("color", defaultInk)))
	for _, pt := range layout(g, p, w, h) {
		r := Radius(pt.radius, pulse, speed, pt.phase, 0)
		if r < effect.Epsilon {
			continue
		}
		doc.Circle(pt.x, pt.y, r)
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	return &state{
		particles: layout(g, p, w, h),
		pulse:     p.Float("pulse"),
		speed:     p.Float("speed"),
		ink:       p.Color("color", defaultInk),
	}
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	ps := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(ps.ink)
	for _, pt := range ps.particles {
		r := Radius(pt.radius, ps.pulse, ps.speed, pt.phase, t)
		if r < effect.Epsilon {
			continue
		}
		s.DrawCircle(pt.x, pt.y, r)
	}
	s.Fill()
}
