package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultVerbosity is the verbosity when neither -q nor -v is given (info).
const DefaultVerbosity = 2

// ConsoleLogger writes log messages to stderr through zap.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	sugar *zap.SugaredLogger
}

// LevelForVerbosity maps a verbosity count to a zap level.
// 0 is error, 1 warn, 2 info, 3 and above debug.
// A negative verbosity turns logging off and reports enabled=false.
func LevelForVerbosity(verbosity int) (level zapcore.Level, enabled bool) {
	switch {
	case verbosity < 0:
		return zapcore.FatalLevel, false
	case verbosity == 0:
		return zapcore.ErrorLevel, true
	case verbosity == 1:
		return zapcore.WarnLevel, true
	case verbosity == 2:
		return zapcore.InfoLevel, true
	default:
		return zapcore.DebugLevel, true
	}
}

// Verbosity combines the counted -v and -q flags.
func Verbosity(verbose, quiet int) int {
	return DefaultVerbosity + verbose - quiet
}

// NewConsoleLogger creates a ConsoleLogger for the given verbosity.
func NewConsoleLogger(verbosity int) *ConsoleLogger {
	level, enabled := LevelForVerbosity(verbosity)
	if !enabled {
		return NewConsoleLoggerWithCore(zapcore.NewNopCore())
	}

	encoderConfig := zapcore.EncoderConfig{
		LevelKey:       "level",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)
	return NewConsoleLoggerWithCore(core)
}

// NewConsoleLoggerWithCore wraps an existing zap core, e.g. a zaptest observer.
func NewConsoleLoggerWithCore(core zapcore.Core) *ConsoleLogger {
	return &ConsoleLogger{sugar: zap.New(core).Sugar()}
}

// Verbose logs detailed diagnostic information at debug level.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs recoverable problems.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered log entries.
func (l *ConsoleLogger) Sync() error {
	return l.sugar.Sync()
}
