package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production env gets JSON output,
// everything else the colored development encoder.
func New(env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "prod" || env == "production" || env == "release" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg.Build()
}
