package export

import (
	"context"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/rs/zerolog"
)

// EncodeGIF renders the job and writes it as a looping GIF. A keyed
// backdrop becomes the transparent palette entry.
func EncodeGIF(ctx context.Context, w io.Writer, j Job) error {
	pal, out := gifPalette(j.Backdrop)
	delay := int(math.Round(100 / float64(j.fps())))
	if delay < 2 {
		delay = 2
	}

	anim := gif.GIF{LoopCount: 0}
	err := RenderFrames(ctx, j, func(i int, t float64, img *image.RGBA) error {
		pm := image.NewPaletted(img.Bounds(), pal)
		draw.FloydSteinberg.Draw(pm, img.Bounds(), img, image.Point{})
		pm.Palette = out
		anim.Image = append(anim.Image, pm)
		anim.Delay = append(anim.Delay, delay)
		return nil
	})
	if err != nil {
		return err
	}

	if err := gif.EncodeAll(w, &anim); err != nil {
		return &EncodingError{Format: "gif", Frame: -1, Err: err}
	}
	zerolog.Ctx(ctx).Info().Int("frames", len(anim.Image)).Msg("gif encoded")
	return nil
}

// gifPalette returns the palette frames are quantized against and the one
// they are written with. They differ only for a keyed backdrop, whose color
// sits at index 0 and is written as transparent.
func gifPalette(b Backdrop) (quantize, write color.Palette) {
	if !b.Keyed || b.Color == nil {
		return palette.Plan9, palette.Plan9
	}
	quantize = make(color.Palette, 0, 256)
	quantize = append(quantize, b.Color)
	quantize = append(quantize, palette.Plan9[:255]...)

	write = make(color.Palette, len(quantize))
	copy(write, quantize)
	write[0] = color.RGBA{}
	return quantize, write
}

// WriteGIF is EncodeGIF into a file that only appears once encoding
// succeeds.
func WriteGIF(ctx context.Context, path string, j Job) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeGIF(ctx, w, j)
	})
}
