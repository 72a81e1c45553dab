// Package logging builds the structured JSON logger shared by every component.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger writing one object per line to w (stdout when nil).
// Timestamps are rendered in loc. An unparsable level falls back to info.
//
// zerolog keeps field names and the clock in package globals, so New
// reconfigures them for the whole process.
func New(w io.Writer, level string, loc *time.Location) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimestampFieldName = "ts"
	zerolog.MessageFieldName = "msg"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFunc = func() time.Time { return time.Now().In(loc) }

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// Component tags every entry with the emitting component.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
