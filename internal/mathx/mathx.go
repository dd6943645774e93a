package mathx

import (
	_ "embed"
	"math"
)

// Script is the JavaScript twin of this package, inserted verbatim into
// standalone exports.
//
//go:embed mathx.js
var Script string

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SeededRandom returns a generator for the mulberry32 sequence. All
// arithmetic wraps at 32 bits.
func SeededRandom(seed uint32) func() float64 {
	s := seed
	return func() float64 {
		s += 0x6D2B79F5
		t := (s ^ (s >> 15)) * (s | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296
	}
}

// Bilinear samples a row-major field at normalized (u, v). Cell (i, j) is
// centered at ((i+0.5)/cols, (j+0.5)/rows); coordinates past the outer
// centers clamp to the edge cells.
func Bilinear(field []float64, cols, rows int, u, v float64) float64 {
	if cols <= 0 || rows <= 0 || len(field) < cols*rows {
		return 0
	}
	x := Clamp(Clamp(u, 0, 1)*float64(cols)-0.5, 0, float64(cols-1))
	y := Clamp(Clamp(v, 0, 1)*float64(rows)-0.5, 0, float64(rows-1))

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	if x1 > cols-1 {
		x1 = cols - 1
	}
	y1 := y0 + 1
	if y1 > rows-1 {
		y1 = rows - 1
	}
	fx := x - float64(x0)
	fy := y - float64(y0)

	top := Lerp(field[y0*cols+x0], field[y0*cols+x1], fx)
	bottom := Lerp(field[y1*cols+x0], field[y1*cols+x1], fx)
	return Lerp(top, bottom, fy)
}

// Hash2 is a stateless pseudo-random value in [0,1) for a lattice index.
func Hash2(i, j int) float64 {
	v := math.Sin(float64(i)*12.9898+float64(j)*78.233) * 43758.5453
	return v - math.Floor(v)
}
