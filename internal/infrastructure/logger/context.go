package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey carries the request-scoped logger
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request ID
	RequestIDKey contextKey = "request_id"
)

// WithContext attaches a logger to the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the context's logger, or a no-op one
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in the context and returns a logger
// tagged with it, itself stored for FromContext.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	tagged := logger.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return WithContext(ctx, tagged), tagged
}

// GetRequestID returns the request ID stored in the context, if any
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithTraceContext tags the logger with the active span's trace and span
// IDs so log lines can be joined with exported traces.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
