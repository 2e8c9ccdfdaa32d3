// Package logger builds the zap loggers and the gin logging middleware
// used across the service.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// defaultTimeLayout keeps millisecond precision so slow upstream round
// trips can be read straight off the request log.
const defaultTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	Output     string // stdout, stderr, or a file path
	TimeFormat string // time layout, defaults to ISO8601 with milliseconds
}

// New builds a zap logger from the configuration. An unknown level or
// format falls back to info/json rather than failing startup.
func New(cfg *Config) (*zap.Logger, error) {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeLayout
	}

	core := zapcore.NewCore(
		newEncoder(cfg.Format, layout),
		openSink(cfg.Output),
		levelFor(cfg.Level),
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// Sync flushes buffered entries; meant for a deferred call at shutdown.
func Sync(logger *zap.Logger) error {
	return logger.Sync()
}

func levelFor(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newEncoder(format, timeLayout string) zapcore.Encoder {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	if strings.ToLower(format) == "console" {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encCfg)
	}
	return zapcore.NewJSONEncoder(encCfg)
}

// openSink resolves the log destination. A file path that cannot be opened
// degrades to stdout so a bad log path never takes the service down.
func openSink(output string) zapcore.WriteSyncer {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout)
	case "stderr":
		return zapcore.AddSync(os.Stderr)
	default:
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zapcore.AddSync(os.Stdout)
		}
		return zapcore.AddSync(file)
	}
}
