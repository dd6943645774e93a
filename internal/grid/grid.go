// Package grid defines the brightness field sampled from source artwork.
package grid

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/inkfield/internal/mathx"
)

// DefaultColumns is the reference column count used when a caller has no
// preference.
const DefaultColumns = 300

var ErrShape = errors.New("grid: data length does not match cols*rows")

// Grid is an immutable row-major brightness field. 0 is ink, 1 is empty.
type Grid struct {
	Cols         int
	Rows         int
	Aspect       float64
	SourceWidth  float64
	SourceHeight float64
	data         []float64
}

// New copies data into a grid. Values are clamped to [0,1].
func New(cols, rows int, data []float64, srcW, srcH float64) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("grid: invalid size %dx%d", cols, rows)
	}
	if len(data) != cols*rows {
		return nil, ErrShape
	}
	g := &Grid{
		Cols:         cols,
		Rows:         rows,
		Aspect:       float64(cols) / float64(rows),
		SourceWidth:  srcW,
		SourceHeight: srcH,
		data:         make([]float64, len(data)),
	}
	for i, v := range data {
		if math.IsNaN(v) {
			v = 1
		}
		g.data[i] = mathx.Clamp(v, 0, 1)
	}
	return g, nil
}

// Uniform returns a grid with every cell set to brightness b.
func Uniform(cols, rows int, b float64) *Grid {
	data := make([]float64, cols*rows)
	for i := range data {
		data[i] = b
	}
	g, _ := New(cols, rows, data, float64(cols), float64(rows))
	return g
}

func (g *Grid) At(col, row int) float64 {
	return g.data[row*g.Cols+col]
}

// Brightness samples the field bilinearly at normalized (u, v).
func (g *Grid) Brightness(u, v float64) float64 {
	return mathx.Bilinear(g.data, g.Cols, g.Rows, u, v)
}

// Darkness is 1 - Brightness.
func (g *Grid) Darkness(u, v float64) float64 {
	return 1 - g.Brightness(u, v)
}

// Data returns a copy of the raw field.
func (g *Grid) Data() []float64 {
	out := make([]float64, len(g.data))
	copy(out, g.data)
	return out
}

// OutputSize fits the source proportions into a box of the given width,
// deriving the height from the source aspect rather than the grid's.
func (g *Grid) OutputSize(width int) (int, int) {
	aspect := g.Aspect
	if g.SourceWidth > 0 && g.SourceHeight > 0 {
		aspect = g.SourceWidth / g.SourceHeight
	}
	h := int(math.Round(float64(width) / aspect))
	if h < 1 {
		h = 1
	}
	return width, h
}

// Stats summarizes the darkness distribution.
type Stats struct {
	MinDarkness  float64
	MaxDarkness  float64
	MeanDarkness float64
	InkFraction  float64
}

// Summary computes darkness stats; cells darker than 0.5 count as ink.
func (g *Grid) Summary() Stats {
	s := Stats{MinDarkness: 1}
	ink := 0
	for _, b := range g.data {
		d := 1 - b
		s.MinDarkness = math.Min(s.MinDarkness, d)
		s.MaxDarkness = math.Max(s.MaxDarkness, d)
		s.MeanDarkness += d
		if d > 0.5 {
			ink++
		}
	}
	n := float64(len(g.data))
	s.MeanDarkness /= n
	s.InkFraction = float64(ink) / n
	return s
}

// ColumnProfile returns the mean darkness of each column.
func (g *Grid) ColumnProfile() []float64 {
	out := make([]float64, g.Cols)
	for c := 0; c < g.Cols; c++ {
		sum := 0.0
		for r := 0; r < g.Rows; r++ {
			sum += 1 - g.At(c, r)
		}
		out[c] = sum / float64(g.Rows)
	}
	return out
}
