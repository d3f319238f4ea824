// Package logging builds the zap logger shared by the kernel, the locator and
// the inspection server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-locator/framework/config"
)

// Log formats accepted in LogConfig.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds a logger from cfg: production settings for json output,
// development settings for console output.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	var zc zap.Config
	switch cfg.Format {
	case FormatJSON, "":
		zc = zap.NewProductionConfig()
	case FormatConsole:
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("failed to create logger: unknown format %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
