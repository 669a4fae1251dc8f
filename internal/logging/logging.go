// Package logging sets up the debug log file.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup returns a logger writing JSON lines to filename.
// If filename is empty, logging is disabled and a no-op logger is returned.
func Setup(filename, level string) (*zap.Logger, func(), error) {
	if filename == "" {
		return zap.NewNop(), func() {}, nil
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), lvl)
	logger := zap.New(core)

	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
