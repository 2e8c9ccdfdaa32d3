package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength is the maximum length for request IDs to prevent DoS via large headers.
const MaxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// TracingWithConfig returns OpenTelemetry tracing middleware. It wraps
// otelgin and tags every span with the request ID so traces can be joined
// with log lines.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	baseMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		// Execute the base otelgin middleware first to create the span
		baseMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			if requestID := tracedRequestID(c); requestID != "" {
				span.SetAttributes(attribute.String("request_id", requestID))
			}
		}
	}
}

// tracedRequestID retrieves the request ID from the gin context or header.
// Header values are truncated to prevent abuse.
func tracedRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}

	headerID := c.GetHeader("X-Request-ID")
	if len(headerID) > MaxRequestIDLength {
		return headerID[:MaxRequestIDLength]
	}
	return headerID
}
