// Package debug carries the --debug switch through contexts and builds the
// process logger.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type debugKey struct{}

// WithDebug returns a context with debug mode enabled/disabled.
func WithDebug(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, debugKey{}, enabled)
}

// IsEnabled returns true if debug mode is enabled in the context.
func IsEnabled(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(debugKey{}).(bool)
	return v
}

// NewLogger returns a text logger on w: Debug level when debugEnabled,
// Warn otherwise.
func NewLogger(w io.Writer, debugEnabled bool) *slog.Logger {
	level := slog.LevelWarn
	if debugEnabled {
		level = slog.LevelDebug
	}
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetupLogger installs a stderr logger as the slog default and returns it.
func SetupLogger(debugEnabled bool) *slog.Logger {
	logger := NewLogger(os.Stderr, debugEnabled)
	slog.SetDefault(logger)
	return logger
}
