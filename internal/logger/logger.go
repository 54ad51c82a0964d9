package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger returns a development logger when level is empty,
// otherwise a production (JSON) logger at the given level.
func NewLogger(level string) (*zap.SugaredLogger, error) {
	if level == "" {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("error creating logger: %w", err)
		}
		return logger.Sugar(), nil
	}

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error creating logger: %w", err)
	}

	return logger.Sugar(), nil
}
