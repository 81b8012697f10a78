// Package logging configures the process-wide slog logger.
//
// Logs are JSON on stderr and carry the module name and version on every
// record. Debug level also records the source location.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewStructuredLogger returns a JSON logger writing to w.
func NewStructuredLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLogger installs a stderr JSON logger as the slog default.
func SetDefaultStructuredLogger(module, version string, level slog.Level) {
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level))
}
