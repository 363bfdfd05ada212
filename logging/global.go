// Package logging sets up slog for the reminder service: human readable text
// on the console and JSON in weekly rotating files.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/giygas/medreminder/config"
)

// Options configures InitLogger
type Options struct {
	Dir            string
	Level          string
	Env            string
	RetentionWeeks int
	MaxFileSize    int64
}

type LoggingService struct {
	Logger *slog.Logger
	closer io.Closer
}

var DefaultLoggingService *LoggingService

// InitLogger builds the console + file logger and installs it as the slog
// default. If the log directory is unusable it falls back to console only.
func InitLogger(opts Options) {
	level := parseLogLevel(opts.Level)

	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ConsoleLevel(opts.Env, level),
	})

	svc := &LoggingService{}

	rotating, err := NewRotatingLogger(opts.Dir, opts.RetentionWeeks, opts.MaxFileSize)
	if err != nil {
		svc.Logger = slog.New(consoleHandler)
		svc.Logger.Error("File logging disabled", "dir", opts.Dir, "error", err)
	} else {
		fileHandler := slog.NewJSONHandler(rotating, &slog.HandlerOptions{Level: level})
		svc.Logger = slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
		svc.closer = rotating
	}

	DefaultLoggingService = svc
	slog.SetDefault(svc.Logger)
}

// Close flushes and closes the log file, if any
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.closer == nil {
		return nil
	}
	return DefaultLoggingService.closer.Close()
}

// Logger returns the configured logger or the slog default
func Logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		return slog.Default()
	}
	return DefaultLoggingService.Logger
}

// parseLogLevel maps LOG_LEVEL values to slog levels, info when unknown
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConsoleLevel keeps test runs quiet on the console; the file still gets level.
func ConsoleLevel(env string, level slog.Level) slog.Level {
	if env == config.EnvTest && level < slog.LevelError {
		return slog.LevelError
	}
	return level
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}
