// Package surface defines the raster drawing target handed to animated
// effects. *gg.Context satisfies [Surface] as-is; [Recorder] captures calls
// for inspection.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Surface is the subset of a 2D canvas API an effect may use. Clear fills
// the whole surface with the current color, replacing existing pixels.
type Surface interface {
	Width() int
	Height() int
	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetLineCapButt()
	Clear()
	DrawLine(x1, y1, x2, y2 float64)
	DrawCircle(x, y, r float64)
	DrawEllipse(x, y, rx, ry float64)
	DrawRectangle(x, y, w, h float64)
	MoveTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	Fill()
	Stroke()
}

var _ Surface = (*gg.Context)(nil)

// New returns a transparent raster surface.
func New(w, h int) *gg.Context {
	return gg.NewContext(w, h)
}

// Composite flattens src over a solid backdrop into a fresh image. The
// backdrop sits beneath every drawn pixel.
func Composite(src image.Image, backdrop color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, &image.Uniform{backdrop}, image.Point{}, draw.Src)
	draw.Draw(dst, b, src, b.Min, draw.Over)
	return dst
}
