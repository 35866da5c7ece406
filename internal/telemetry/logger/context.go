// Package logger provides structured logging for call-flow services.
package logger

import (
	"context"
	"maps"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "flowlog.logger"
	// metaDataKey is the context key for per-call metadata.
	metaDataKey contextKey = "flowlog.metadata"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok && l != nil {
		return l
	}
	return Default()
}

// WithMetaData adds metadata to the context, on top of any already there.
func WithMetaData(ctx context.Context, meta map[string]any) context.Context {
	merged := MetaDataFromContext(ctx)
	maps.Copy(merged, meta)
	return context.WithValue(ctx, metaDataKey, merged)
}

// MetaDataFromContext returns a copy of the context's metadata.
func MetaDataFromContext(ctx context.Context) map[string]any {
	if m, ok := ctx.Value(metaDataKey).(map[string]any); ok {
		return maps.Clone(m)
	}
	return make(map[string]any)
}

// WithScope records the flow and next state of the call in the context.
func WithScope(ctx context.Context, flow, state string) context.Context {
	return WithMetaData(ctx, map[string]any{FlowKey: flow, StateKey: state})
}

// L is a shorthand for FromContext that also enriches the logger
// with the metadata carried by the context.
func L(ctx context.Context) *Logger {
	l := FromContext(ctx)

	if meta := MetaDataFromContext(ctx); len(meta) > 0 {
		l = l.With(meta)
	}

	return l
}
