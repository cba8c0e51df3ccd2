package partition

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with partitioning-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithItems adds the problem size to the logger.
func (l *Logger) WithItems(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("items", n),
	}
}

// WithSeed adds the random seed of a run to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogResult logs the outcome of a run.
func (l *Logger) LogResult(ctx context.Context, res *Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition failed",
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "partition completed",
		"generations", res.Generations,
		"fitness", res.Fitness,
		"set0", len(res.Set0),
		"set1", len(res.Set1),
	)
}
