package logging

import (
	"context"
	"log/slog"
)

// LevelTrace is a custom level below slog.LevelDebug for very chatty
// output such as per-candidate search results.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v flag count to a log level.
// 0 is warnings only, -v adds info, -vv debug, -vvv trace.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// Trace logs msg at LevelTrace. slog has no Trace convenience method,
// so call sites use this instead of spelling out Log with a context.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

type contextKey struct{}

// NewContext returns a context carrying the logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the process default
// when none is set.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
