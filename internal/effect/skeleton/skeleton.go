// Package skeleton is the reference layout for a new effect. It is
// registered so the contract tests cover it, but it is hidden from users.
//
// To add an effect:
//
//  1. Copy this package and give it a new ID in package effect.
//  2. Keep Defaults total: every key Init or Generate reads must have a
//     default, including internal keys left out of Schema.
//  3. Put every grid read in a layout function shared by Generate and Init,
//     so the SVG and frame zero agree.
//  4. Keep state free of pointers to the grid or any package variable, and
//     mirror Init and DrawFrame in the embedded .js file line for line.
//  5. Add the module to the registry.
package skeleton

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

//go:embed skeleton.js
var script string

var (
	defaultInk        = colorful.Color{R: 0, G: 0, B: 0}
	defaultBackground = colorful.Color{R: 1, G: 1, B: 1}
)

func Module() effect.Module {
	return effect.Module{
		ID:        effect.Skeleton,
		Title:     "Skeleton",
		Template:  true,
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
		"columns":    40.0,
		"scale":      0.9,
		"speed":      0.5,
		"color":      "#000000",
		"background": "#ffffff",
	}
}

func Schema() []param.Descriptor {
	d := Defaults()
	return []param.Descriptor{
		{Key: "columns", Label: "Columns", Min: 4, Max: 120, Step: 1, Default: d["columns"]},
		{Key: "scale", Label: "Scale", Min: 0.1, Max: 1, Step: 0.05, Default: d["scale"]},
		{Key: "speed", Label: "Speed", Min: 0, Max: 4, Step: 0.05, Default: d["speed"]},
		{Key: "color", Label: "Ink", Kind: param.Color, Default: d["color"]},
		{Key: "background", Label: "Background", Kind: param.Color, Default: d["background"]},
	}
}

type square struct {
	cx, cy, side float64
}

type state struct {
	squares []square
	speed   float64
	ink     color.Color
}

func layout(g *grid.Grid, p param.Set, w, h int) []square {
	cols := p.Int("columns", 1)
	rows := effect.Lattice(cols, w, h)
	cw, ch := float64(w)/float64(cols), float64(h)/float64(rows)
	scale := p.Float("scale")

	var out []square
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			cx, cy := (float64(i)+0.5)*cw, (float64(j)+0.5)*ch
			side := g.Darkness(cx/float64(w), cy/float64(h)) * math.Min(cw, ch) * scale
			if side < effect.Epsilon {
				continue
			}
			out = append(out, square{cx, cy, side})
		}
	}
	return out
}

// Breath is the size factor at time t; it is exactly 1 at t=0.
func Breath(speed, t float64) float64 {
	return 1 + 0.15*math.Sin(2*math.Pi*speed*t)
}

func Generate(g *grid.Grid, p param.Set, w, h int) string {
	p = param.Merge(Defaults(), p)
	doc := effect.NewDocument(w, h, "skeleton", p.Hex("background", defaultBackground))
	doc.Group(fmt.Sprintf("fill:%s", p.Hex("color", defaultInk)))
	for _, sq := range layout(g, p, w, h) {
		side := sq.side * Breath(p.Float("speed"), 0)
		doc.Rect(sq.cx-side/2, sq.cy-side/2, side, side)
	}
	doc.EndGroup()
	return doc.String()
}

func Init(g *grid.Grid, p param.Set, w, h int) effect.State {
	p = param.Merge(Defaults(), p)
	return &state{
		squares: layout(g, p, w, h),
		speed:   p.Float("speed"),
		ink:     p.Color("color", defaultInk),
	}
}

func DrawFrame(s surface.Surface, st effect.State, t float64) {
	ks := st.(*state)
	s.SetColor(color.Transparent)
	s.Clear()
	s.SetColor(ks.ink)
	f := Breath(ks.speed, t)
	for _, sq := range ks.squares {
		side := sq.side * f
		if side < effect.Epsilon {
			continue
		}
		s.DrawRectangle(sq.cx-side/2, sq.cy-side/2, side, side)
	}
	s.Fill()
}
