// Package logging builds the structured loggers used by respvars.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel overrides the configured log level when set.
const EnvLevel = "RESPVARS_LOG_LEVEL"

// New returns a logger writing to w. format is "json" or "text"; level is one
// of debug, info, warn, error or off. An "off" level discards everything.
func New(w io.Writer, level, format string) *slog.Logger {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	if strings.EqualFold(level, "off") || w == nil {
		return Discard()
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a level name to a slog level, defaulting to warn.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
