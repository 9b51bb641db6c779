// Package logging builds the process logger. The TUI owns the terminal, so in
// interactive mode logs go to a JSON file; headless commands log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/justinpbarnett/healtop/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(cfg config.LogConfig, headless bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var zc zap.Config
	if headless {
		zc = zap.NewDevelopmentConfig()
		zc.Development = false
		zc.DisableStacktrace = true
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.OutputPaths = []string{"stderr"}
	} else {
		if cfg.File == "" {
			return zap.NewNop(), nil
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: creating log dir: %w", err)
		}
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		zc.OutputPaths = []string{cfg.File}
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: building logger: %w", err)
	}
	return logger.Named("healtop"), nil
}
