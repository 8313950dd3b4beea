// Package logger builds the zap loggers used across the service.
// Every line is a single JSON object with ts, level and msg keys; ts is rendered
// in the configured location as RFC3339Nano.
package logger

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to stdout at the given level ("debug", "info", ...).
// Unknown levels fall back to info.
func New(level string, loc *time.Location) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	return build(zapcore.Lock(os.Stdout), loc, lvl)
}

// NewWithWriter returns a debug-level JSON logger writing to w. Used by tests and tools.
func NewWithWriter(w io.Writer, loc *time.Location) *zap.Logger {
	return build(zapcore.AddSync(w), loc, zapcore.DebugLevel)
}

func build(ws zapcore.WriteSyncer, loc *time.Location, lvl zapcore.Level) *zap.Logger {
	if loc == nil {
		loc = time.UTC
	}
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "component",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeTime: func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString(t.In(loc).Format(time.RFC3339Nano))
		},
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), ws, lvl)
	return zap.New(core)
}
