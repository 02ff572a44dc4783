package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a console logger tagged with the given component name.
func NewLogger(component string) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
