package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a console slog.Logger with provided level string. Errors go to
// stderr, everything else to stdout.
func New(level string) *slog.Logger {
	return NewWithWriters(level, os.Stdout, os.Stderr)
}

// NewWithWriters is New with explicit destinations.
func NewWithWriters(level string, out, errOut io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFromString(level)}
	return slog.New(&splitHandler{
		out:    slog.NewTextHandler(out, opts),
		errOut: slog.NewTextHandler(errOut, opts),
	})
}

// splitHandler routes ERROR records to errOut and the rest to out.
type splitHandler struct {
	out    slog.Handler
	errOut slog.Handler
}

func (h *splitHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.out.Enabled(ctx, level)
}

func (h *splitHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return h.errOut.Handle(ctx, r)
	}
	return h.out.Handle(ctx, r)
}

func (h *splitHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &splitHandler{out: h.out.WithAttrs(attrs), errOut: h.errOut.WithAttrs(attrs)}
}

func (h *splitHandler) WithGroup(name string) slog.Handler {
	return &splitHandler{out: h.out.WithGroup(name), errOut: h.errOut.WithGroup(name)}
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// ValidLevel reports whether value names a known level.
func ValidLevel(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
