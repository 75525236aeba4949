// Package log is a thin leveled front end over [log/slog] with functional
// configuration and a package-level default logger.
//
// A Logger is assembled once from options and is immutable afterward;
// reconfiguring means deriving a new Logger with [Logger.Wrap]. The
// package-level functions route through a default logger writing to
// standard error, replaced wholesale by [Config].
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger is an immutable leveled logger.
type Logger struct {
	*slog.Logger
	cfg config
}

// Make creates a Logger writing to w, configured by opts over the
// defaults: [DefaultLevel], [DefaultFormat], [DefaultTimeLayout], pretty
// text enabled.
func Make(w io.Writer, opts ...Option) Logger {
	cfg := makeConfig(w, opts...)

	return Logger{cfg: cfg, Logger: slog.New(cfg.handler())}
}

// Wrap derives a new Logger from l's configuration with opts applied over
// it.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.cfg, opts...)

	return Logger{cfg: cfg, Logger: slog.New(cfg.handler())}
}

// With derives a new Logger carrying attrs on every message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	return Logger{
		cfg:    l.cfg,
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
	}
}

// Level returns the configured minimum level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// Format returns the configured output encoding.
func (l Logger) Format() Format {
	if l.Logger == nil {
		return DefaultFormat
	}

	return l.cfg.format
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(LevelDebug, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(LevelInfo, msg, attrs...)
}

// Warn logs a message at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(LevelWarn, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(LevelError, msg, attrs...)
}

// log writes one message. The zero Logger silently discards.
func (l Logger) log(level Level, msg string, attrs ...slog.Attr) {
	if l.Logger == nil {
		return
	}

	l.LogAttrs(context.Background(), slog.Level(level), msg, attrs...)
}

// defaultLog backs the package-level functions. Stored atomically so
// Config can replace it under concurrent logging.
var defaultLog atomic.Pointer[Logger]

func init() {
	l := Make(os.Stderr)
	defaultLog.Store(&l)
}

// Config rebuilds the default logger with opts applied over its current
// configuration.
func Config(opts ...Option) {
	l := defaultLog.Load().Wrap(opts...)
	defaultLog.Store(&l)
}

// Default returns the current default logger.
func Default() Logger {
	return *defaultLog.Load()
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().Debug(msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().Info(msg, attrs...)
}

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().Warn(msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().Error(msg, attrs...)
}
