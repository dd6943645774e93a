// Package ellipses lays a lattice of ellipses over the artwork. Each
// ellipse's vertical radius follows darkness; a diagonal phase offset makes
// the lattice pulse in waves when animated.
package ellipses

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

//go:embed ellipses.js
var script string

var (
	defaultInk        = colorful.Color{R: 0x1a / 255.0, G: 0x1a / 255.0, B: 0x1a / 255.0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Ellipses,
		Title:     "Ellipse Grid",
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
		"columns":      60.0,
		"maxRadius":    1.0,
		"eccentricity": 0.6,
		"pulse":        0.25,
		"speed":        0.5,
		"phaseStep":    0.35,
		"color":        "#1a1a1a",
		"background":   "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "columns", Label: "Columns", Min: 8, Max: 160, Step: 1, Default: d["columns"]},
		{Key: "maxRadius", Label: "Max radius", Min: 0.1, Max: 1.5, Step: 0.05, Default: d["maxRadius"]},
		{Key: "eccentricity", Label: "Eccentricity", Min: 0.1, Max: 1.5, Step: 0.05, Default: d["eccentricity"]},
		{Key: "pulse", Label: "Pulse", Min: 0, Max: 1, Step: 0.01, Default: d["pulse"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "phaseStep", Label: "Wave step", Min: 0, Max: 2, Step: 0.01, Default: d["phaseStep"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type cell struct {
	cx, cy float64
	rx, ry float64
	diag   int
}

type state struct {
	cells     []cell
	pulse     float64
	speed     float64
	phaseStep float64
	ink       color.Color
}

func layout(g *grid.Grid, p param.Set, w, h int) []cell {
	cols := p.Int("columns", 1)
	rows := effect.Lattice(cols, w, h)
	cw, ch := float64(w)/float64(cols), float64(h)/float64(rows)
	maxR := p.Float("maxRadius") * math.Min(cw, ch) / 2
	ecc := p.Float("eccentricity")
	reach := 1 + math.Abs(p.Float("pulse"))

	cells := make([]cell, 0, cols*rows)
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			cx := (float64(i) + 0.5) * cw
			cy := (float64(j) + 0.5) * ch
			ry := mathx.Lerp(0, maxR, g.Darkness(cx/float64(w), cy/float64(h)))
			rx := ry * ecc
			// never drawable, even at the top of the pulse
			if math.Min(rx, ry)*reach < effect.Epsilon {
				continue
			}
			cells = append(cells, cell{cx: cx, cy: cy, rx: rx, ry: ry, diag: i + j})
		}
	}
	return cells
}

// Pulse is the radius factor for a cell on diagonal diag at time t.
func Pulse(pulse, speed, phaseStep float64, diag int, t float64) float64 {
	return 1 + pulse*math.Sin(2*math.Pi*speed*t+float64(diag)*phaseStep)
}

func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	pulse, speed, phaseStep := p.Float("pulse"), p.Float("speed"), p.Float("phaseStep")

	doc := effect.NewDocument(w, h, "ellipses", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("fill:%s", p.Hex("color", defaultInk)))
	for _, c := range layout(g, p, w, h) {
		f := Pulse(pulse, speed, phaseStep, c.diag, 0)
		rx, ry := c.rx*f, c.ry*f
		if rx < effect.Epsilon || ry < effect.Epsilon {
			continue
		}
		doc.Ellipse(c.cx, c.cy, rx, ry)
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	return &state{
		cells:     layout(g, p, w, h),
		pulse:     p.Float("pulse"),
		speed:     p.Float("speed"),
		phaseStep: p.Float("phaseStep"),
		ink:       p.Color("color", defaultInk),
	}
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	es := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(es.ink)
	for _, c := range es.cells {
		f := Pulse(es.pulse, es.speed, es.phaseStep, c.diag, t)
		rx, ry := c.rx*f, c.ry*f
		if rx < effect.Epsilon || ry < effect.Epsilon {
			continue
		}
		s.DrawEllipse(c.cx, c.cy, rx, ry)
	}
	s.Fill()
}
