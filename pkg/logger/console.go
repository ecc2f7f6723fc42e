package logger

import (
	"log/slog"
	"os"
)

// NewConsoleHandler writes human-readable lines to stderr so the dashboard
// CLI can keep stdout for its own output.
func NewConsoleHandler(level slog.Level) slog.Handler {
	return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
}
