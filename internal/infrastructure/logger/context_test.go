package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewExample()

	ctx := WithContext(context.Background(), logger)

	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_NotFound(t *testing.T) {
	// Should return a no-op logger
	assert.NotNil(t, FromContext(context.Background()))
}

func TestWithRequestID(t *testing.T) {
	logger := zap.NewExample()
	requestID := "req-123"

	newCtx, newLogger := WithRequestID(context.Background(), logger, requestID)

	assert.NotNil(t, newLogger)
	assert.Equal(t, requestID, GetRequestID(newCtx))
	assert.Equal(t, newLogger, FromContext(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	logger := zap.NewExample()

	// Without an active span the logger comes back unchanged
	assert.Equal(t, logger, WithTraceContext(context.Background(), logger))
}
