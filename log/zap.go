// Package log builds the process-wide zap logger from the CLI flags.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger = zap.NewNop()

// New builds a logger for the given zap level name ("debug", "info", ...)
// and format ("text" for console output, "json" otherwise).
func New(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	var cfg zap.Config
	switch format {
	case "text":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("log format %q: want text or json", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// Init replaces the package logger with one built by New.
func Init(level, format string) error {
	l, err := New(level, format)
	if err != nil {
		return err
	}
	Logger = l
	return nil
}
