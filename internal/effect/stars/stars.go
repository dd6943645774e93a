// Package stars places four-pointed glints on a jittered lattice. Cells
// lighter than [Threshold] are left out entirely; the rest twinkle with a
// phase hashed from their lattice index.
package stars

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/mathx"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

//go:embed stars.js
var script string

// Threshold is the minimum darkness at a glint's center.
const Threshold = 0.3

var (
	defaultInk        = colorful.Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Stars,
		Title:     "Star Glint",
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
		"columns":    48.0,
		"jitter":     0.35,
		"minSize":    0.2,
		"maxSize":    1.0,
		"pinch":      0.12,
		"twinkle":    0.6,
		"speed":      0.6,
		"seed":       7.0,
		"color":      "#111111",
		"background": "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "columns", Label: "Columns", Min: 8, Max: 120, Step: 1, Default: d["columns"]},
		{Key: "jitter", Label: "Jitter", Min: 0, Max: 1, Step: 0.01, Default: d["jitter"]},
		{Key: "minSize", Label: "Min size", Min: 0, Max: 1.5, Step: 0.05, Default: d["minSize"]},
		{Key: "maxSize", Label: "Max size", Min: 0, Max: 1.5, Step: 0.05, Default: d["maxSize"]},
		{Key: "pinch", Label: "Pinch", Min: 0, Max: 0.5, Step: 0.01, Default: d["pinch"]},
		{Key: "twinkle", Label: "Twinkle", Min: 0, Max: 1, Step: 0.01, Default: d["twinkle"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type glint struct {
	cx, cy   float64
	size     float64
	phase    float64
	darkness float64
}

type state struct {
	glints  []glint
	pinch   float64
	twinkle float64
	speed   float64
	ink     color.Color
}

// layout draws jitter for every cell, kept or not, so the sequence does not
// depend on which cells pass the threshold.
func layout(g *grid.Grid, p param.Set, w, h int) []glint {
	cols := p.Int("columns", 1)
	rows := effect.Lattice(cols, w, h)
	cw, ch := float64(w)/float64(cols), float64(h)/float64(rows)
	half := math.Min(cw, ch) / 2
	jitter := p.Float("jitter")
	lo, hi := p.Range("minSize", "maxSize")
	next := mathx.SeededRandom(uint32(p.Int("seed", 0)))

	var out []glint
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			jx := (next() - 0.5) * jitter * cw
			jy := (next() - 0.5) * jitter * ch
			u := mathx.Clamp(((float64(i)+0.5)*cw+jx)/float64(w), 0, 1)
			v := mathx.Clamp(((float64(j)+0.5)*ch+jy)/float64(h), 0, 1)
			d := g.Darkness(u, v)
			if d < Threshold {
				continue
			}
			out = append(out, glint{
				cx:       u * float64(w),
				cy:       v * float64(h),
				size:     mathx.Lerp(lo, hi, d) * half,
				phase:    2 * math.Pi * mathx.Hash2(i, j),
				darkness: d,
			})
		}
	}
	return out
}

// Twinkle is the size factor of a glint with the given phase at time t.
func Twinkle(twinkle, speed, phase, t float64) float64 {
	return 1 - twinkle*0.5*(1-math.Cos(2*math.Pi*speed*t+phase))
}

// outline returns the four quadratic segments of a glint: each entry is a
// control point followed by the end point, starting from the top tip.
func outline(cx, cy, s, pinch float64) (startX, startY float64, segs [4][4]float64) {
	k := s * pinch
	segs = [4][4]float64{
		{cx + k, cy - k, cx + s, cy},
		{cx + k, cy + k, cx, cy + s},
		{cx - k, cy + k, cx - s, cy},
		{cx - k, cy - k, cx, cy - s},
	}
	return cx, cy - s, segs
}

func pathData(cx, cy, s, pinch float64) string {
	x, y, segs := outline(cx, cy, s, pinch)
	var b strings.Builder
	b.WriteString("M" + effect.Num(x) + " " + effect.Num(y))
	for _, q := range segs {
		fmt.Fprintf(&b, "Q%s %s %s %s", effect.Num(q[0]), effect.Num(q[1]), effect.Num(q[2]), effect.Num(q[3]))
	}
	b.WriteString("Z")
	return b.String()
}

func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	pinch, twinkle, speed := p.Float("pinch"), p.Float("twinkle"), p.Float("speed")

	doc := effect.NewDocument(w, h, "stars", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("fill:%s", p.Hex("color", defaultInk)))
	for _, gl := range layout(g, p, w, h) {
		s := gl.size * Twinkle(twinkle, speed, gl.phase, 0)
		if s < effect.Epsilon {
			continue
		}
		doc.Path(pathData(gl.cx, gl.cy, s, pinch))
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	return &state{
		glints:  layout(g, p, w, h),
		pinch:   p.Float("pinch"),
		twinkle: p.Float("twinkle"),
		speed:   p.Float("speed"),
		ink:     p.Color("color", defaultInk),
	}
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	ss := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(ss.ink)
	for _, gl := range ss.glints {
		size := gl.size * Twinkle(ss.twinkle, ss.speed, gl.phase, t)
		if size < effect.Epsilon {
			continue
		}
		x, y, segs := outline(gl.cx, gl.cy, size, ss.pinch)
		s.MoveTo(x, y)
		for _, q := range segs {
			s.QuadraticTo(q[0], q[1], q[2], q[3])
		}
		s.ClosePath()
	}
	s.Fill()
}
