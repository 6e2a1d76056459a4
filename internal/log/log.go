// Package log configures the process-wide structured logger.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger writing to w at the given level. Level is one of
// "debug", "info", "warn", "error" (case-insensitive); anything else falls
// back to info. When text is false the logger emits JSON records.
//
// Parameters:
//   - w: destination writer (os.Stderr if nil)
//   - level: minimum level name
//   - text: true for human-readable text output, false for JSON
//
// Returns:
//   - *slog.Logger: the configured logger
func New(w io.Writer, level string, text bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if text {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
//
// Parameters:
//   - level: level name ("debug", "info", "warn", "error")
//
// Returns:
//   - slog.Level: the parsed level
func ParseLevel(level string) slog.Level {
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
