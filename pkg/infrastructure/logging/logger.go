package logging

import (
	"go.uber.org/zap"
)

// NewZapLogger builds a production logger at the given level ("debug",
// "info", "warn", "error")
func NewZapLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	return cfg.Build()
}
