package vecarena

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with consistent field names for pool and store
// operations. Pass Logger.Logger to store.WithLogger.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. A nil handler falls
// back to a text handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON records to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards everything.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithPoolSize tags the logger with the pool capacity in bytes.
func (l *Logger) WithPoolSize(bytes int) *Logger {
	return &Logger{Logger: l.Logger.With("pool_bytes", bytes)}
}

// WithDimension tags the logger with a vector dimension.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{Logger: l.Logger.With("dimension", dim)}
}

// LogAlloc logs a pool allocation.
func (l *Logger) LogAlloc(ctx context.Context, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "alloc failed", "size", size, "error", err)
	} else {
		l.DebugContext(ctx, "alloc completed", "size", size)
	}
}

// LogFree logs a pool free.
func (l *Logger) LogFree(ctx context.Context, err error) {
	if err != nil {
		l.ErrorContext(ctx, "free failed", "error", err)
	} else {
		l.DebugContext(ctx, "free completed")
	}
}

// LogSearch logs a store search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "error", err)
	} else {
		l.DebugContext(ctx, "search completed", "k", k, "results", resultsFound)
	}
}

// LogSnapshot logs a snapshot save or restore.
func (l *Logger) LogSnapshot(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed", "name", name, "error", err)
	} else {
		l.InfoContext(ctx, "snapshot completed", "name", name, "bytes", bytes)
	}
}
