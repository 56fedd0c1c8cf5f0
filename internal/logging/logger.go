package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ethiqia/internal/config"
)

// Logger is the application logger. Read it through GetLogger.
var Logger *zap.Logger

var mu sync.Mutex

// InitLogger initializes the logger with the given configuration
func InitLogger(cfg config.Logging) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapConfig zap.Config
	if cfg.Format == "text" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	mu.Lock()
	Logger = logger
	mu.Unlock()
	return nil
}

// GetLogger returns the global logger
func GetLogger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()

	if Logger == nil {
		logger, err := zap.NewProduction()
		if err != nil {
			logger = zap.NewNop()
		}
		Logger = logger
	}
	return Logger
}

// WithComponent adds component name to logger
func WithComponent(component string) *zap.Logger {
	return GetLogger().With(zap.String("component", component))
}

// WithRequestID adds request ID to logger
func WithRequestID(requestID string) *zap.Logger {
	return GetLogger().With(zap.String("request_id", requestID))
}
