package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger at the given level. Level
// strings outside debug/info/warn/error fall back to info.
func NewZapLogger(level string) Logger {
	cfg := zap.NewProductionConfig()

	switch level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	log, _ := cfg.Build(zap.AddCallerSkip(1))
	return &ZapLogger{log: log.Sugar()}
}

func (z *ZapLogger) Debugw(msg string, keysAndValues ...interface{}) {
	z.log.Debugw(msg, keysAndValues...)
}

func (z *ZapLogger) Infow(msg string, keysAndValues ...interface{}) {
	z.log.Infow(msg, keysAndValues...)
}

func (z *ZapLogger) Warnw(msg string, keysAndValues ...interface{}) {
	z.log.Warnw(msg, keysAndValues...)
}

func (z *ZapLogger) Errorw(msg string, keysAndValues ...interface{}) {
	z.log.Errorw(msg, keysAndValues...)
}
