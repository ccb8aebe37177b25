package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config captures the settings needed to build the CLI logger.
type Config struct {
	// Level is the textual log level (debug, info, warn, error).
	Level string
	// Format is json or text.
	Format string
	// AddSource toggles slog's source attribution.
	AddSource bool
}

// ParseLevel converts textual levels into slog levels. Unknown values fall back to warn so
// diagnostics stay out of the operator's way unless asked for.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return slog.LevelDebug - 2
	case "debug", "dbg":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds a slog.Logger writing to w, stderr when w is nil.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ForRun tags every record with the run's correlation id.
func ForRun(logger *slog.Logger, runID string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(runID) == "" {
		return logger
	}
	return logger.With(slog.String("run_id", runID))
}
