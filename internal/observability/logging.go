// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the global structured logger instance used throughout the application.
var Logger *slog.Logger

type contextKey string

// RunIDKey carries the identifier of the current seeding run.
const RunIDKey contextKey = "run_id"

// ctxHandler is a slog.Handler that adds context values to the log record.
type ctxHandler struct {
	slog.Handler
}

// Handle adds context values to the record before passing it to the underlying handler.
func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid, ok := ctx.Value(RunIDKey).(string); ok {
		r.AddAttrs(slog.String("run_id", rid))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

func init() {
	InitLogger(os.Getenv("APP_ENV"))
}

// InitLogger rebuilds the global logger for env. Commands call it again once .env and
// the config files are loaded, since init only sees the process environment.
func InitLogger(env string) {
	Logger = NewLogger(os.Stderr, env)
}

// NewLogger builds a context-aware logger: JSON in production, text otherwise.
func NewLogger(w io.Writer, env string) *slog.Logger {
	var handler slog.Handler
	level := slog.LevelInfo

	if env == "production" || env == "prod" {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}

	return slog.New(&ctxHandler{handler})
}

// WithRunID returns a new context with the given run ID.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// RunID retrieves the run ID from the context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}
