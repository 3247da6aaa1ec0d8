package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	sugar *zap.SugaredLogger
}

func NewLogger(level int) *defaultLogger {
	return NewLoggerWithEncoding(level, false)
}

// NewLoggerWithEncoding creates a logger writing JSON lines when json is true,
// or colored console lines otherwise.
func NewLoggerWithEncoding(level int, json bool) *defaultLogger {
	if level >= SILENCE {
		return &defaultLogger{sugar: zap.NewNop().Sugar()}
	}

	var cfg zap.Config
	if json {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.MessageKey = "message"
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewExample()
	}

	return &defaultLogger{sugar: l.Sugar()}
}

func NewNopLogger() *defaultLogger {
	return &defaultLogger{sugar: zap.NewNop().Sugar()}
}

// ParseLevel converts a textual level into one of the level constants. Unknown
// values fall back to INFO.
func ParseLevel(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARNING
	case "error":
		return ERROR
	case "silence", "none", "off":
		return SILENCE
	default:
		return INFO
	}
}

func zapLevel(level int) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

// Sync flushes buffered entries.
func (l *defaultLogger) Sync() error {
	return l.sugar.Sync()
}
