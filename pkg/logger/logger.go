// Package logger builds the structured loggers used throughout the
// dictionary package hierarchy.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.SugaredLogger named name, using zap's production
// encoder config with millisecond-precision ISO8601 timestamps. level controls
// the minimum enabled level; pass zapcore.InfoLevel for typical use.
func New(name string, level zapcore.Level) (*zap.SugaredLogger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name).Sugar(), nil
}

// NewNop returns a logger that discards everything, for callers that don't
// configure one explicitly.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
