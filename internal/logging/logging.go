// Package logging builds the process logger. Packages read it back from a
// context with zerolog.Ctx and stay silent when none is attached.
package logging

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w. verbose enables debug events.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// JSON returns a logger emitting one JSON object per event.
func JSON(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.SyncWriter(w)).Level(level).With().Timestamp().Logger()
}

// Into attaches logger to ctx.
func Into(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
