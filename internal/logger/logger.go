// Package logger wraps slog with the small surface the service needs.
package logger

import (
	"log/slog"
	"os"
)

// Logger is the application logger. It embeds slog.Logger, so the usual
// Debug/Info/Warn/Error methods are available directly.
type Logger struct {
	*slog.Logger
}

// New creates a Logger writing text records to stdout at the given
// level. Level follows slog semantics: 0 is info, -4 is debug.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
