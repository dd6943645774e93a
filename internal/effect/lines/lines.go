// Package lines draws the artwork as parallel strokes whose segments grow
// with local darkness. Stroke width travels along the lines as a sine wave
// when animated.
package lines

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

//go:embed lines.js
var script string

var (
	defaultInk        = colorful.Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Lines,
		Title:     "Lines",
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
		"lines":       90.0,
		"rows":        0.0,
		"orientation": 0.0,
		"length":      1.0,
		"minWidth":    0.6,
		"maxWidth":    2.4,
		"speed":       0.5,
		"frequency":   0.25,
		"color":       "#111111",
		"background":  "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "lines", Label: "Lines", Min: 10, Max: 240, Step: 1, Default: d["lines"]},
		{Key: "rows", Label: "Rows (0 = auto)", Min: 0, Max: 200, Step: 1, Default: d["rows"]},
		{Key: "orientation", Label: "Horizontal", Min: 0, Max: 1, Step: 1, Default: d["orientation"]},
		{Key: "length", Label: "Length", Min: 0.1, Max: 1.5, Step: 0.05, Default: d["length"]},
		{Key: "minWidth", Label: "Min width", Min: 0.1, Max: 6, Step: 0.1, Default: d["minWidth"]},
		{Key: "maxWidth", Label: "Max width", Min: 0.1, Max: 6, Step: 0.1, Default: d["maxWidth"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "frequency", Label: "Frequency", Min: 0, Max: 2, Step: 0.01, Default: d["frequency"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type segment struct {
	x1, y1, x2, y2 float64
	index          int
}

type state struct {
	segments  []segment
	minWidth  float64
	maxWidth  float64
	speed     float64
	frequency float64
	ink       color.Color
}

// layout places one segment per lattice cell. rows=0 derives a row count
// that keeps cells roughly square on the output.
func layout(g *grid.Grid, p param.Set, w, h int) []segment {
	vertical := p.Float("orientation") < 0.5
	stack, cross := float64(w), float64(h)
	if !vertical {
		stack, cross = cross, stack
	}

	n := p.Int("lines", 1)
	rows := p.Int("rows", 0)
	if rows == 0 {
		rows = int(math.Max(1, math.Round(float64(n)*cross/stack)))
	}
	pitch := stack / float64(n)
	cell := cross / float64(rows)
	length := p.Float("length")

	segs := make([]segment, 0, n*rows)
	for i := 0; i < n; i++ {
		a := (float64(i) + 0.5) * pitch
		for j := 0; j < rows; j++ {
			b := (float64(j) + 0.5) * cell
			u, v := a/float64(w), b/float64(h)
			if !vertical {
				u, v = b/float64(w), a/float64(h)
			}
			l := g.Darkness(u, v) * cell * length
			if l < effect.Epsilon {
				continue
			}
			s := segment{x1: a, y1: b - l/2, x2: a, y2: b + l/2, index: i}
			if !vertical {
				s = segment{x1: b - l/2, y1: a, x2: b + l/2, y2: a, index: i}
			}
			segs = append(segs, s)
		}
	}
	return segs
}

// Generate renders each segment at its frame-zero stroke width.
func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	lo, hi := p.Range("minWidth", "maxWidth")
	speed, frequency := p.Float("speed"), p.Float("frequency")

	doc := effect.NewDocument(w, h, "lines", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("stroke:%s;stroke-linecap:butt;fill:none", p.Hex("color", defaultInk)))
	for _, s := range layout(g, p, w, h) {
		width := StrokeWidth(lo, hi, speed, frequency, s.index, 0)
		if width < effect.Epsilon {
			continue
		}
		doc.Line(s.x1, s.y1, s.x2, s.y2, width)
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	lo, hi := p.Range("minWidth", "maxWidth")
	return &state{
		segments:  layout(g, p, w, h),
		minWidth:  lo,
		maxWidth:  hi,
		speed:     p.Float("speed"),
		frequency: p.Float("frequency"),
		ink:       p.Color("color", defaultInk),
	}
}

// StrokeWidth is the animated width of a line at stacking index i.
func StrokeWidth(lo, hi, speed, frequency float64, i int, t float64) float64 {
	wave := 0.5 + 0.5*math.Sin(2*math.Pi*speed*t-float64(i)*frequency)
	return mathx.Lerp(lo, hi, wave)
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	ls := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(ls.ink)
	s.SetLineCapButt()
	for _, seg := range ls.segments {
		width := StrokeWidth(ls.minWidth, ls.maxWidth, ls.speed, ls.frequency, seg.index, t)
		if width < effect.Epsilon {
			continue
		}
		s.SetLineWidth(width)
		s.DrawLine(seg.x1, seg.y1, seg.x2, seg.y2)
		s.Stroke()
	}
}
