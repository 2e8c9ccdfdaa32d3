package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, levelFor(tt.in), "level %q", tt.in)
	}
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Debug("filtered out")
	log.Info("sync started")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "sync started", entry["msg"])
	assert.NotEmpty(t, entry["time"])
	assert.NotEmpty(t, entry["caller"])
	assert.NotContains(t, string(data), "filtered out")
}

func TestNew_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.log")

	log, err := New(&Config{Level: "debug", Format: "console", Output: path})
	require.NoError(t, err)

	log.Debug("debug line")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Console lines are not JSON
	assert.Error(t, json.Unmarshal(data, &map[string]any{}))
	assert.Contains(t, string(data), "debug line")
}

func TestOpenSink(t *testing.T) {
	assert.NotNil(t, openSink(""))
	assert.NotNil(t, openSink("stdout"))
	assert.NotNil(t, openSink("stderr"))
	// Unopenable path degrades to stdout instead of failing
	assert.NotNil(t, openSink("/nonexistent-dir/service.log"))
}

func TestNew_DefaultTimeLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "time.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("tick")
	require.NoError(t, Sync(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	// Millisecond precision from the default layout
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}`, entry["time"])
}
