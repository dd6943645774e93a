package effect

import (
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
	"github.com/san-kum/inkfield/internal/surface"
)

// Epsilon is the smallest size, in output units, that is still drawn.
const Epsilon = 0.25

// ID enumerates the known effects.
type ID int

const (
	Lines ID = iota
	Ellipses
	Particles
	Stars
	Halftone
	Skeleton
)

var idNames = [...]string{"lines", "ellipses", "particles", "stars", "halftone", "skeleton"}

func (id ID) String() string {
	if id < 0 || int(id) >= len(idNames) {
		return "unknown"
	}
	return idNames[id]
}

// State is an effect's precomputed animation state. Only the effect that
// produced it may consume it.
type State any

// Module binds one effect ID to its implementation.
type Module struct {
	ID    ID
	Title string
	// Template marks the reference skeleton, which is not listed to users.
	Template bool

	Defaults  func() param.Set
	Schema    func() []param.Descriptor
	Generate  func(g *grid.Grid, p param.Set, w, h int) string
	Init      func(g *grid.Grid, p param.Set, w, h int) State
	DrawFrame func(s surface.Surface, st State, t float64)

	// Script is JavaScript defining `effect` with defaults, init and
	// drawFrame equivalent to the Go functions above.
	Script string
}

func (m Module) Name() string { return m.ID.String() }

// Params merges p over the module defaults.
func (m Module) Params(p param.Set) param.Set {
	return param.Merge(m.Defaults(), p)
}

// Lattice returns the row count for a lattice of cols columns laid over a
// w x h output so that cells come out square.
func Lattice(cols, w, h int) int {
	if cols < 1 || w <= 0 {
		return 1
	}
	rows := int(float64(h)/(float64(w)/float64(cols)) + 0.5)
	if rows < 1 {
		rows = 1
	}
	return rows
}
