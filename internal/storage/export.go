package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/inkfield/internal/grid"
)

// ExportData is the self-contained JSON form of a stored grid, rows of
// brightness values top to bottom.
type ExportData struct {
	ID           string      `json:"id"`
	Source       string      `json:"source"`
	Timestamp    time.Time   `json:"timestamp"`
	Cols         int         `json:"cols"`
	Rows         int         `json:"rows"`
	SourceWidth  float64     `json:"source_width"`
	SourceHeight float64     `json:"source_height"`
	Stats        grid.Stats  `json:"stats"`
	Brightness   [][]float64 `json:"brightness"`
}

// Export writes grid id as indented JSON.
func (s *Store) Export(w io.Writer, id string) error {
	meta, err := s.Load(id)
	if err != nil {
		return err
	}
	g, err := s.LoadGrid(id)
	if err != nil {
		return err
	}
	return ExportJSON(w, meta, g)
}

func ExportJSON(w io.Writer, meta *GridMetadata, g *grid.Grid) error {
	data := ExportData{
		ID:           meta.ID,
		Source:       meta.Source,
		Timestamp:    meta.Timestamp,
		Cols:         g.Cols,
		Rows:         g.Rows,
		SourceWidth:  g.SourceWidth,
		SourceHeight: g.SourceHeight,
		Stats:        g.Summary(),
		Brightness:   make([][]float64, g.Rows),
	}

	flat := g.Data()
	for r := 0; r < g.Rows; r++ {
		data.Brightness[r] = flat[r*g.Cols : (r+1)*g.Cols]
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
