// Package logging configures slog for the service: console text output plus
// a weekly rotating JSON file, and a chi middleware that logs requests.
package logging

import (
	"log/slog"
	"os"
)

// Service wraps the configured logger so packages can share one instance.
type Service struct {
	Logger *slog.Logger
}

// Default is the process-wide logging service, set by InitLogger.
var Default *Service

// InitLogger initializes the global logger and installs it as the slog
// default.
func InitLogger(logDir string, retentionWeeks int, maxFileSize int64) {
	Default = &Service{
		Logger: SetupLogger(logDir, retentionWeeks, maxFileSize),
	}
	slog.SetDefault(Default.Logger)
}

// Logger returns the configured logger, or a console fallback before
// InitLogger has run.
func Logger() *slog.Logger {
	return logger(slog.LevelInfo)
}

func logger(level slog.Level) *slog.Logger {
	if Default != nil && Default.Logger != nil {
		return Default.Logger
	}
	// Console fallback when logging is used before InitLogger, mostly in
	// tests.
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Package-level helpers for direct access.

func Info(msg string, args ...any) {
	logger(slog.LevelInfo).Info(msg, args...)
}

func Warn(msg string, args ...any) {
	logger(slog.LevelWarn).Warn(msg, args...)
}

func Error(msg string, args ...any) {
	logger(slog.LevelError).Error(msg, args...)
}

func Debug(msg string, args ...any) {
	logger(slog.LevelDebug).Debug(msg, args...)
}
