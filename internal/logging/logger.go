// Package logging provides ARMOR's process-wide structured logger. It is
// initialized to discard everything by default so library code and tests
// never need a nil check; Init wires it to a real handler once the CLI has
// parsed its flags. Grounded on joshuapare-hivekit's logger package
// (package-level *slog.Logger + Init(Options)).
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// L is the global logger. Safe to call before Init; it discards output
// until Init is called.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	// Level is the minimum level that will be logged.
	Level slog.Level
	// JSON selects JSON output instead of human-readable text.
	JSON bool
}

// Init reconfigures the global logger to write to stderr at the given
// level. Call once from main() before any other package logs.
func Init(opts Options) {
	handlerOpts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
		return
	}
	L = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
}

// ParseLevel maps a --log-level flag value (ERROR|LOG|INFO|DEBUG, case
// insensitive) to a slog.Level, defaulting to Info for unrecognized input.
// LOG maps to Warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "LOG", "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
