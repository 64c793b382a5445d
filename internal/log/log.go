// Package log builds the zerolog logger shared by the commands.
package log

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02 15:04:05"

// New returns a console logger writing to w at the named level. An empty or
// unknown level means info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: timeFormat,
		NoColor:    true,
	}
	return zerolog.New(consoleWriter).Level(lvl).With().Timestamp().Logger()
}

// Stderr is New writing to standard error.
func Stderr(level string) zerolog.Logger {
	return New(os.Stderr, level)
}
