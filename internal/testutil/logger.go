package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose output is discarded, so tests stay quiet.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
