// Package logging builds the zap loggers used across srcweave.
package logging

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeFormat = "2006/01/02 15:04:05.000"

// New returns a console logger writing to stderr. quiet wins over verbose.
func New(verbose, quiet bool) *zap.Logger {
	return NewWithWriter(os.Stderr, verbose, quiet)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, verbose, quiet bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		Level(verbose, quiet),
	)
	return zap.New(core)
}

// Level maps the CLI verbosity flags to a zap level.
func Level(verbose, quiet bool) zapcore.Level {
	switch {
	case quiet:
		return zapcore.ErrorLevel
	case verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// File tags a log entry with a source file name.
func File(name string) zap.Field {
	return zap.String("file", name)
}

// Component names the subsystem emitting a log entry.
func Component(name string) zap.Field {
	return zap.String("component", name)
}
