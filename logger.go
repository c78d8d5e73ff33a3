package weft

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with weft-specific context.
// This provides structured logging with consistent field names.
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
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithGraph adds node and edge count fields to the logger.
func (l *Logger) WithGraph(g *Graph) *Logger {
	return &Logger{
		Logger: l.Logger.With("nodes", g.NodeCount(), "edges", g.EdgeCount()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogFinalize logs a builder finalize.
func (l *Logger) LogFinalize(ctx context.Context, nodes, edges int, elapsed time.Duration) {
	l.DebugContext(ctx, "graph finalized",
		"nodes", nodes,
		"edges", edges,
		"elapsed", elapsed,
	)
}

// LogBulkQuery logs a parallel ancestors/descendants query.
func (l *Logger) LogBulkQuery(ctx context.Context, kind string, seeds, workers int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bulk query failed",
			"kind", kind,
			"seeds", seeds,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "bulk query completed",
			"kind", kind,
			"seeds", seeds,
			"workers", workers,
			"elapsed", elapsed,
		)
	}
}

// LogTopologicalSort logs the first (cached) topological sort of a graph.
func (l *Logger) LogTopologicalSort(ctx context.Context, nodes int, cyclic bool, elapsed time.Duration) {
	if cyclic {
		l.InfoContext(ctx, "topological sort found a cycle",
			"nodes", nodes,
			"elapsed", elapsed,
		)
	} else {
		l.DebugContext(ctx, "topological sort completed",
			"nodes", nodes,
			"elapsed", elapsed,
		)
	}
}
