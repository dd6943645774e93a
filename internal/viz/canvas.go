package viz

import (
	"image"
	"strings"
)

// blank is the empty braille cell; each cell holds a 2x4 block of dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const blank rune = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// InkAlpha is the alpha, out of 0xffff, at which a frame pixel becomes a dot.
const InkAlpha = 0x8000

// Canvas is a braille raster of Width x Height terminal cells.
type Canvas struct {
	Width, Height int
	Cells         [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Cells: make([][]rune, h)}
	for row := range c.Cells {
		c.Cells[row] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set raises the dot at sub-pixel (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return
	}
	c.Cells[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) Clear() {
	for _, row := range c.Cells {
		for i := range row {
			row[i] = blank
		}
	}
}

// Plot replaces the canvas with the inked pixels of img, anchored at the
// canvas origin.
func (c *Canvas) Plot(img image.Image) {
	c.Clear()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a >= InkAlpha {
				c.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.Width + 1) * c.Height * 3)
	for _, row := range c.Cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
