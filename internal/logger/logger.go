package logger

import (
	"log/slog"
	"os"
	"strings"
)

// shared logger instance for the whole process
var defaultLogger *slog.Logger

// configures the logger from ENVIRONMENT and LOG_LEVEL
func init() {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	var handler slog.Handler

	if os.Getenv("ENVIRONMENT") == "production" {
		// production: JSON to stdout for log collectors
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		// development: readable text on stderr
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	defaultLogger = slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	default:
		if os.Getenv("ENVIRONMENT") == "production" {
			return slog.LevelInfo
		}

		return slog.LevelDebug
	}
}

// returns the shared logger
func Default() *slog.Logger {
	return defaultLogger
}

// returns a logger scoped to one component, e.g. logger.Component("hybrid")
func Component(name string) *slog.Logger {
	return defaultLogger.With("component", name)
}

// creates a logger with additional fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// logs a debug message
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error with the wrapped cause attached
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

// logs a fatal error and exits (for CLI entrypoints)
func Fatal(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
	os.Exit(1)
}
