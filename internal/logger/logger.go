package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper over zerolog so callers do not depend on the
// global zerolog logger
type Logger struct {
	logger *zerolog.Logger
}

// New creates a human-readable console logger writing to w (stderr when nil).
// Debug events are dropped unless isDebug is set.
func New(w io.Writer, isDebug bool, noColor bool) *Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if isDebug {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{logger: &logger}
}

// NewJSON creates a structured logger emitting one JSON object per line
func NewJSON(w io.Writer, isDebug bool) *Logger {
	level := zerolog.InfoLevel
	if isDebug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{logger: &logger}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	logger := zerolog.Nop()
	return &Logger{logger: &logger}
}

// With creates a child logger with the field added to its context.
func (l *Logger) With() zerolog.Context { return l.logger.With() }

// Extend adds some additional context to the existing logger.
func (l *Logger) Extend(ctx zerolog.Context) *Logger {
	logger := ctx.Logger()
	return &Logger{logger: &logger}
}

// Debug starts a new message with debug level.
// You must call Msg on the returned event in order to send the event.
func (l *Logger) Debug() *zerolog.Event { return l.logger.Debug() }

// Info starts a new message with info level.
func (l *Logger) Info() *zerolog.Event { return l.logger.Info() }

// Warn starts a new message with warn level.
func (l *Logger) Warn() *zerolog.Event { return l.logger.Warn() }

// Error starts a new message with error level.
func (l *Logger) Error() *zerolog.Event { return l.logger.Error() }
