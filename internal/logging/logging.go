// Package logging builds the slog logger shared by all binaries.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/claude/workoutplan/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a logger configured from cfg and a close func for the log file,
// if any. Logs go to stdout unless a file is configured; with both set they
// are written to each.
func New(cfg config.LogConfig) (*slog.Logger, func() error) {
	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }

	if cfg.File != "" {
		name := cfg.File
		if !strings.HasSuffix(name, ".log") {
			name += ".log"
		}
		rotating := &lumberjack.Logger{
			Filename:   name,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			Compress:   true,
		}
		closeFn = rotating.Close
		out = rotating
		if cfg.Stdout {
			out = io.MultiWriter(os.Stdout, rotating)
		}
	}

	return NewWithWriter(out, cfg), closeFn
}

// NewWithWriter returns a logger writing to w.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps a level name to slog.Level, defaulting to Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// Discard returns a logger that drops everything. Used by tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
