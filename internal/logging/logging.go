// Package logging builds the zerolog logger shared by all commands.
//
// Log lines go to stderr. Workflow commands and diagnostics are not logs: they
// are written to stdout verbatim so the runner can parse them.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at info level, or debug level
// when verbose is set.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
