package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides structured, leveled logging throughout the application.
// It keeps the printf-style call sites and writes through zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// NewLogger creates a console Logger at info level writing to stdout.
func NewLogger() *Logger {
	return New("info", "console", os.Stdout)
}

// New creates a Logger with the given level and format ("console" or "json").
func New(level, format string, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}
	if format == "console" || format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
	}

	zlog := zerolog.New(out).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{zlog: zlog}
}

// NewNopLogger discards everything. Used by tests.
func NewNopLogger() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// With returns a child logger carrying an extra field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{zlog: l.zlog.With().Interface(key, value).Logger()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zlog.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zlog.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zlog.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zlog.Debug().Msgf(format, args...)
}

// Elapsed logs a debug line with the time spent since start.
func (l *Logger) Elapsed(stage string, start time.Time) {
	l.zlog.Debug().Str("stage", stage).Dur("elapsed", time.Since(start)).Msg("stage finished")
}
