package export

import (
	"io"

	"github.com/san-kum/inkfield/internal/effect"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/san-kum/inkfield/internal/param"
)

// WriteSVG writes the effect's static document to path.
func WriteSVG(path string, m effect.Module, g *grid.Grid, p param.Set, w, h int) error {
	doc := m.Generate(g, p, w, h)
	return writeAtomic(path, func(out io.Writer) error {
		if _, err := io.WriteString(out, doc); err != nil {
			return &EncodingError{Format: "svg", Frame: -1, Err: err}
		}
		return nil
	})
}
