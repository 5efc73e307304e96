// Package logging builds the zap loggers used by the scenery binaries.
package logging

import (
	"fmt"

	"github.com/plus3/scenery/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger from the log section of the configuration.
func New(cfg config.Log) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = true
	if cfg.Output != "" {
		zc.OutputPaths = []string{cfg.Output}
		zc.ErrorOutputPaths = []string{cfg.Output}
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
