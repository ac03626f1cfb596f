// Package logging configures the zerolog logger shared by the CLI and the
// experiment runner.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Setup returns a console logger writing to w at the given level. Unknown
// levels fall back to info.
func Setup(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(lvl).With().Timestamp().Logger()
}

// JSON returns a structured logger without console formatting, for piping
// run logs into other tools.
func JSON(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
