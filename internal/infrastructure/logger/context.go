package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// OperationIDKey is the context key for the business operation ID
	OperationIDKey contextKey = "operation_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithOperationID adds an operation ID to the context and returns the
// enriched logger so retries of the same business operation correlate
func WithOperationID(ctx context.Context, logger *zap.Logger, operationID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, OperationIDKey, operationID)
	enriched := logger.With(zap.String("operation_id", operationID))
	return WithContext(ctx, enriched), enriched
}

// GetOperationID retrieves the operation ID from context
func GetOperationID(ctx context.Context) string {
	if operationID, ok := ctx.Value(OperationIDKey).(string); ok {
		return operationID
	}
	return ""
}

// L returns the context's logger enriched with the operation ID, if any.
// Usage: logger.L(ctx).Info("message", zap.String("key", "value"))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	if operationID := GetOperationID(ctx); operationID != "" {
		l = l.With(zap.String("operation_id", operationID))
	}
	return l
}
