// Package logging provides the structured console logger for the CLI.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to stderr (stdout is reserved for
// listings). verbose lowers the level to debug.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
