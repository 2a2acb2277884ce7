package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerConfig controls how loggers are built
type LoggerConfig struct {
	Debug bool
}

// NewLogger builds a JSON production logger. Debug lowers the level to debug
// and adds caller and stacktrace information on warnings.
func NewLogger(cfg *LoggerConfig) (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg != nil && cfg.Debug {
		c.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		c.Development = true
	}

	return c.Build()
}
