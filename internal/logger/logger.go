// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger builds the zap loggers used across job-matcher. Logs go
// to stderr so that match reports on stdout stay machine-readable.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger, or a JSON one when json is set. debug
// lowers the level from info to debug.
func New(json bool, debug bool) (*zap.Logger, error) {
	return build(json, debug, []string{"stderr"})
}

func build(json, debug bool, outputs []string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}
	return cfg.Build()
}

// WithFields returns base enriched with fields. A nil base yields a no-op
// logger so callers never need to guard.
func WithFields(base *zap.Logger, fields ...zap.Field) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// Truncate shortens s to limit runes, appending an ellipsis when cut.
// Listing summaries can be long; log fields carry only their start.
func Truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
