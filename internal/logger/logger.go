package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// process-wide logger, replaced by Setup once config is loaded
var defaultLogger = newLogger(os.Getenv("ENVIRONMENT"), os.Getenv("LOG_LEVEL"))

type loggerKey struct{}

// builds a handler for the given environment and level name
// production gets JSON on stdout, everything else human-readable text on stderr
func newLogger(environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level, environment)}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler).With("service", "krishisakhi")
}

func parseLevel(level, environment string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	if environment == "production" {
		return slog.LevelInfo
	}

	return slog.LevelDebug
}

// reconfigures the default logger from loaded configuration
func Setup(environment, level string) {
	defaultLogger = newLogger(environment, level)
	slog.SetDefault(defaultLogger)
}

// returns the default logger instance
func Default() *slog.Logger {
	return defaultLogger
}

// creates a logger with additional fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// returns the logger attached to ctx, or the default one
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}

	return defaultLogger
}

// attaches a logger to ctx
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error under the "error" key
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs and exits (CLI entrypoints only)
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}

// logs an error and exits (CLI entrypoints only)
func FatalErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
