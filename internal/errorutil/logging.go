// Package errorutil holds the error-handling helpers shared by the suite's
// commands: structured file operation errors and log-then-wrap utilities.
package errorutil

import (
	"fmt"
	"log/slog"
	"time"
)

// LogAndWrap logs an error with structured context and returns it wrapped
// with the operation name.
func LogAndWrap(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	if logger != nil {
		logger.Error(operation+" failed", toAny(append([]slog.Attr{slog.String("error", err.Error())}, attrs...))...)
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// LogWarning logs a non-fatal error as warning without wrapping
func LogWarning(logger *slog.Logger, operation string, err error, attrs ...slog.Attr) {
	if logger == nil || err == nil {
		return
	}
	logger.Warn("Non-fatal error in "+operation, toAny(append([]slog.Attr{slog.String("error", err.Error())}, attrs...))...)
}

// ExecuteWithLogging wraps a function call with operation logging.
// Start and completion are logged at debug level with timing; a failure is
// logged at error level and returned wrapped with the operation name.
func ExecuteWithLogging(logger *slog.Logger, operation string, fn func() error, attrs ...slog.Attr) error {
	if logger == nil {
		return fn()
	}

	start := time.Now()
	logger.Debug("Starting "+operation, toAny(attrs)...)

	err := fn()

	done := append(append([]slog.Attr{}, attrs...), slog.Duration("duration", time.Since(start)))
	if err != nil {
		done = append(done, slog.String("error", err.Error()))
		logger.Error("Failed "+operation, toAny(done)...)
		return fmt.Errorf("%s: %w", operation, err)
	}

	logger.Debug("Completed "+operation, toAny(done)...)
	return nil
}

func toAny(attrs []slog.Attr) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
	}
	return out
}

// Common context helpers for frequently used attributes

func ConfigContext(configFile string) []slog.Attr {
	if configFile == "" {
		return nil
	}
	return []slog.Attr{slog.String("config_file", configFile)}
}

func FileContext(filePath string) []slog.Attr {
	if filePath == "" {
		return nil
	}
	return []slog.Attr{slog.String("file_path", filePath)}
}

// DatetimeContext describes a conversion request; empty values are omitted.
func DatetimeContext(value, timezone, locale string) []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	if value != "" {
		attrs = append(attrs, slog.String("value", value))
	}
	if timezone != "" {
		attrs = append(attrs, slog.String("timezone", timezone))
	}
	if locale != "" {
		attrs = append(attrs, slog.String("locale", locale))
	}
	return attrs
}
