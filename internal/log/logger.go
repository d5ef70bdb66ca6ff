// Package log provides the process-wide structured logger. Every record
// carries a component attribute naming the emitting binary, so the server
// and the worker stay distinguishable when their output lands in the same
// place.
package log

import (
	"log/slog"
	"os"
)

// Logger emits slog records tagged with its component name.
type Logger struct {
	*slog.Logger
	component string
}

// Config selects the log level and the component tag. A zero Level means
// Info.
type Config struct {
	Level     slog.Level
	Component string
}

// New builds a Logger writing text records to stdout.
func New(config Config) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.Level,
	})
	return &Logger{
		Logger:    slog.New(handler),
		component: config.Component,
	}
}

// SetDefault routes slog's package-level functions through the given
// logger, so libraries logging via slog pick up the same handler.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}

func (l *Logger) Info(msg string, args ...any) {
	l.Logger.Info(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.Logger.Warn(msg, append([]any{"component", l.component}, args...)...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, append([]any{"component", l.component}, args...)...)
}
