package logging

import (
	"context"
	"io"
	"log/slog"
	"time"

	"antenna/internal/services"
)

// Attr helpers keep call sites free of a direct slog dependency.

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

// WithContext enriches the logger with run correlation values carried in
// ctx. Safe to call with a nil logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if ctx == nil {
		return logger
	}
	if runID, ok := services.RunIDFromContext(ctx); ok {
		logger = logger.With(String("run_id", runID))
	}
	if source, ok := services.SourceFromContext(ctx); ok {
		logger = logger.With(String("source", source))
	}
	return logger
}
