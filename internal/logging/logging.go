package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Rorical/cadcopilot/internal/config"
)

// New builds the process logger. The interactive client owns stdout, so logs
// only go to the configured file; without one the logger discards everything.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return zap.NewNop(), nil
	}
	return build(cfg.File, cfg.Level, verbose)
}

// NewConsole logs to stderr, for commands that do not draw a screen. A
// configured file still wins.
func NewConsole(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	path := "stderr"
	if strings.TrimSpace(cfg.File) != "" {
		path = cfg.File
	}
	return build(path, cfg.Level, verbose)
}

func build(path, rawLevel string, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if raw := strings.TrimSpace(rawLevel); raw != "" {
		parsed, err := zapcore.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
