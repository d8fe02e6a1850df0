// Package logger builds the slog logger of the CLI, rendered by pterm so
// log lines match the rest of the terminal output.
package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"
)

// New creates a logger writing to w at the named level ("debug", "info",
// "warn", "error"). Unknown levels mean info.
func New(w io.Writer, level string) *slog.Logger {
	l := pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(parseLevel(level)).
		WithTime(false)

	return slog.New(pterm.NewSlogHandler(l))
}

func parseLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return pterm.LogLevelTrace
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}
