package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newObservedEngine returns a gin engine wired with GinMiddleware writing
// into an in-memory sink.
func newObservedEngine() (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	engine.Use(GinMiddleware(zap.New(core)))
	return engine, logs
}

func fieldMap(entry observer.LoggedEntry) map[string]any {
	m := make(map[string]any, len(entry.Context))
	for _, f := range entry.Context {
		m[f.Key] = f
	}
	return m
}

func TestGinMiddleware_LogsRequestLine(t *testing.T) {
	engine, logs := newObservedEngine()
	engine.GET("/order/:order_id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest("GET", "/order/4021?debug=1", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)

	fields := fieldMap(entry)
	assert.Contains(t, fields, "status")
	assert.Contains(t, fields, "latency")
	assert.Contains(t, fields, "method")
	assert.Contains(t, fields, "path")
	assert.Contains(t, fields, "query")
}

func TestGinMiddleware_LevelTracksStatus(t *testing.T) {
	tests := []struct {
		status int
		want   zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusBadRequest, zapcore.WarnLevel},
		{http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		engine, logs := newObservedEngine()
		engine.GET("/probe-status", func(c *gin.Context) {
			c.Status(tt.status)
		})

		req := httptest.NewRequest("GET", "/probe-status", nil)
		engine.ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, 1, logs.Len(), "status %d", tt.status)
		assert.Equal(t, tt.want, logs.All()[0].Level, "status %d", tt.status)
	}
}

func TestGinMiddleware_CarriesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set("request_id", "req-abc123")
	})
	engine.Use(GinMiddleware(zap.New(core)))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-abc123", fields["request_id"])
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	engine := gin.New()
	engine.Use(Recovery(zap.New(core)))
	engine.GET("/boom", func(c *gin.Context) {
		panic("upstream client not initialized")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "upstream client not initialized", entry.ContextMap()["panic"])
}

func TestGetGinLogger(t *testing.T) {
	t.Run("returns the request-scoped logger", func(t *testing.T) {
		engine, _ := newObservedEngine()

		var got *zap.Logger
		engine.GET("/capture", func(c *gin.Context) {
			got = GetGinLogger(c)
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest("GET", "/capture", nil)
		engine.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, got)
		assert.NotEqual(t, zap.NewNop(), got)
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, GetGinLogger(c))
	})
}
