package zxinglight

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// LoggerName is attached to every entry as the "logger" field.
const LoggerName = "zxinglight"

var (
	defaultLogger zerolog.Logger
	loggerOnce    sync.Once
)

// NewLogger returns a JSON logger writing to w, tagged with LoggerName.
// Write errors are reported to zerolog.ErrorHandler and never reach callers.
func NewLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("logger", LoggerName).Logger()
}

// DefaultLogger returns the process-wide logger, creating it on first use.
// It writes to stderr at warn level.
func DefaultLogger() zerolog.Logger {
	loggerOnce.Do(func() {
		defaultLogger = NewLogger(os.Stderr).Level(zerolog.WarnLevel)
	})
	return defaultLogger
}
