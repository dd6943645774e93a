package export

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// WritePNGs renders the job as frame_00000.png, frame_00001.png, ... in
// dir. Frames go to a sibling temp directory that is renamed to dir on
// success, so a failed or canceled export leaves nothing behind. dir must
// not exist yet. Frames are encoded on up to GOMAXPROCS goroutines while the
// next one renders.
func WritePNGs(ctx context.Context, dir string, j Job) (err error) {
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("export: %s already exists", dir)
	}
	parent := filepath.Dir(dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return err
	}
	tmp, err := os.MkdirTemp(parent, "."+filepath.Base(dir)+"-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	renderErr := RenderFrames(gctx, j, func(i int, t float64, img *image.RGBA) error {
		g.Go(func() error {
			if err := writePNG(&enc, filepath.Join(tmp, FrameName(i)), img); err != nil {
				return &EncodingError{Format: "png", Frame: i, Err: err}
			}
			return nil
		})
		return nil
	})
	// A failed encode cancels gctx, so report it ahead of the cancellation.
	if err = g.Wait(); err == nil {
		err = renderErr
	}
	if err != nil {
		return err
	}

	if err = os.Rename(tmp, dir); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("dir", dir).Int("frames", j.Frames()).Msg("png sequence written")
	return nil
}

func FrameName(i int) string {
	return fmt.Sprintf("frame_%05d.png", i)
}

func writePNG(enc *png.Encoder, path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := enc.Encode(bw, img); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
