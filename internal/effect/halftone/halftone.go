// Package halftone renders rows of short horizontal strokes whose width is
// darkness modulated by a spatial sine wave. Animation slides the wave.
package halftone

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/mathx"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

//go:embed halftone.js
var script string

// MaxFill caps stroke width as a fraction of row height so neighbouring
// rows never touch.
const MaxFill = 0.9

var (
	defaultInk        = colorful.Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Halftone,
		Title:     "Line Halftone",
		Defaults:  Defaults,
		Schema:    Schema,
		Generate:  Generate,
		Init:      Init,
		DrawFrame: DrawFrame,
		Script:    script,
	}
}

func Defaults() param.Set {
	return param.Set{
		"rows":       0.0,
		"samples":    120.0,
		"thickness":  1.0,
		"frequency":  6.0,
		"tilt":       0.5,
		"depth":      0.35,
		"speed":      0.4,
		"color":      "#111111",
		"background": "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "rows", Label: "Rows (0 = grid)", Min: 0, Max: 400, Step: 1, Default: d["rows"]},
		{Key: "samples", Label: "Samples per row", Min: 20, Max: 600, Step: 1, Default: d["samples"]},
		{Key: "thickness", Label: "Thickness", Min: 0.1, Max: 1.5, Step: 0.05, Default: d["thickness"]},
		{Key: "frequency", Label: "Wave frequency", Min: 0, Max: 30, Step: 0.5, Default: d["frequency"]},
		{Key: "tilt", Label: "Wave tilt", Min: -2, Max: 2, Step: 0.05, Default: d["tilt"]},
		{Key: "depth", Label: "Wave depth", Min: 0, Max: 1, Step: 0.01, Default: d["depth"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type stroke struct {
	x0, x1, y float64
	// full is the width at the crest of the wave, before the cap.
	full  float64
	phase float64
}

type state struct {
	strokes []stroke
	depth   float64
	speed   float64
	limit   float64
	ink     color.Color
}

// layout uses the grid's own row count unless rows is overridden.
func layout(g *grid.Grid, p param.Set, w, h int) (strokes []stroke, limit float64) {
	rows := p.Int("rows", 0)
	if rows == 0 {
		rows = g.Rows
	}
	samples := p.Int("samples", 1)
	rowH := float64(h) / float64(rows)
	segW := float64(w) / float64(samples)
	freq := p.Float("frequency")
	tilt := p.Float("tilt")
	thickness := p.Float("thickness")

	for r := 0; r < rows; r++ {
		v := (float64(r) + 0.5) / float64(rows)
		for s := 0; s < samples; s++ {
			u := (float64(s) + 0.5) / float64(samples)
			full := g.Darkness(u, v) * thickness * rowH
			if full < effect.Epsilon {
				continue
			}
			strokes = append(strokes, stroke{
				x0:    float64(s) * segW,
				x1:    float64(s+1) * segW,
				y:     v * float64(h),
				full:  full,
				phase: 2 * math.Pi * (u*freq + v*freq*tilt),
			})
		}
	}
	return strokes, MaxFill * rowH
}

// Width is a stroke's width at time t.
func Width(full, phase, depth, speed, limit, t float64) float64 {
	wave := 0.5 + 0.5*math.Sin(phase+2*math.Pi*speed*t)
	return math.Min(full*(1-depth+depth*wave), limit)
}

func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	depth := mathx.Clamp(p.Float("depth"), 0, 1)
	speed := p.Float("speed")

	doc := effect.NewDocument(w, h, "halftone", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("stroke:%s;stroke-linecap:butt;fill:none", p.Hex("color", defaultInk)))
	strokes, limit := layout(g, p, w, h)
	for _, s := range strokes {
		width := Width(s.full, s.phase, depth, speed, limit, 0)
		if width < effect.Epsilon {
			continue
		}
		doc.Line(s.x0, s.y, s.x1, s.y, width)
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	strokes, limit := layout(g, p, w, h)
	return &state{
		strokes: strokes,
		depth:   mathx.Clamp(p.Float("depth"), 0, 1),
		speed:   p.Float("speed"),
		limit:   limit,
		ink:     p.Color("color", defaultInk),
	}
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	hs := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(hs.ink)
	s.SetLineCapButt()
	for _, k := range hs.strokes {
		width := Width(k.full, k.phase, hs.depth, hs.speed, hs.limit, t)
		if width < effect.Epsilon {
			continue
		}
		s.SetLineWidth(width)
		s.DrawLine(k.x0, k.y, k.x1, k.y)
		s.Stroke()
	}
}
