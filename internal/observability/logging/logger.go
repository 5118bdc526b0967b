package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewJSONLogger builds the structured logger used by the long-running
// binaries (api, worker).
func NewJSONLogger(service, level string) *slog.Logger {
	return newLogger(os.Stdout, service, level, false)
}

// NewTextLogger builds the logger for the interactive CLI. It writes to
// stderr so log lines never interleave with the rendered analysis output
// on stdout.
func NewTextLogger(service, level string) *slog.Logger {
	return newLogger(os.Stderr, service, level, true)
}

func newLogger(w io.Writer, service, level string, text bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", service)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
