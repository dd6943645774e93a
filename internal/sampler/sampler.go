package sampler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/san-kum/inkfield/internal/grid"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Backdrop is the flat color the artwork is composited over.
var Backdrop = color.RGBA{255, 255, 255, 255}

// Sample rasterizes an SVG stream into a brightness grid with targetColumns
// columns. Non-positive targetColumns selects grid.DefaultColumns.
func Sample(r io.Reader, targetColumns int) (*grid.Grid, error) {
	return sample(r, "", targetColumns)
}

// SampleFile is Sample over a file on disk.
func SampleFile(path string, targetColumns int) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return sample(f, filepath.Base(path), targetColumns)
}

// Load is SampleFile with the outcome logged to the context logger.
func Load(ctx context.Context, path string, targetColumns int) (*grid.Grid, error) {
	log := zerolog.Ctx(ctx)
	g, err := SampleFile(path, targetColumns)
	if err != nil {
		log.Error().Err(err).Str("source", path).Msg("sampling failed")
		return nil, err
	}
	log.Debug().
		Str("source", path).
		Int("cols", g.Cols).
		Int("rows", g.Rows).
		Float64("source_width", g.SourceWidth).
		Float64("source_height", g.SourceHeight).
		Msg("sampled")
	return g, nil
}

// Rows returns the row count for a source aspect and column count.
func Rows(cols int, aspect float64) int {
	if aspect <= 0 || math.IsInf(aspect, 0) || math.IsNaN(aspect) {
		return cols
	}
	rows := int(math.Round(float64(cols) / aspect))
	if rows < 1 {
		rows = 1
	}
	return rows
}

func sample(r io.Reader, name string, cols int) (g *grid.Grid, err error) {
	if cols <= 0 {
		cols = grid.DefaultColumns
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	box, err := intrinsicBox(data)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	rows := Rows(cols, box.W/box.H)

	img, err := render(data, box, cols, rows)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}

	field := make([]float64, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := img.RGBAAt(x, y)
			field[y*cols+x] = (float64(c.R) + float64(c.G) + float64(c.B)) / 3 / 255
		}
	}

	return grid.New(cols, rows, field, box.W, box.H)
}

// render draws the icon stretched to w x h. oksvg panics on some malformed
// path data; that is reported as a load failure.
func render(data []byte, box viewBox, w, h int) (img *image.RGBA, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img = nil
			err = fmt.Errorf("render: %v", rec)
		}
	}()

	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	icon.ViewBox.X = box.X
	icon.ViewBox.Y = box.Y
	icon.ViewBox.W = box.W
	icon.ViewBox.H = box.H
	icon.SetTarget(0, 0, float64(w), float64(h))

	img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{Backdrop}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	raster := rasterx.NewDasher(w, h, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
