// Package logging defines the structured-logging interface used across the
// client and its backends (slog, zap, zerolog).
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "request sent", "method", method, "path", path)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

const (
	BackendSlog    = "slog"
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
)

// Options selects and tunes a backend.
type Options struct {
	Backend string
	Level   string
	Output  io.Writer
}

// New builds a Logger for opts.Backend. Empty Backend means slog; empty
// Output means stderr.
func New(opts Options) (Logger, error) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendSlog:
		h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel(opts.Level)})
		return NewSlogLogger(slog.New(h)), nil
	case BackendZap:
		return newZapLogger(out, opts.Level), nil
	case BackendZerolog:
		return newZerologLogger(out, opts.Level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

// NewNopLogger discards everything. Handy for tests and library defaults.
func NewNopLogger() Logger {
	return NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func normLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func slogLevel(s string) slog.Level {
	switch normLevel(s) {
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
