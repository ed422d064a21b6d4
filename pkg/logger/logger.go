// Package logger configures process-wide structured logging for the suite.
// It binds a verbosity level to a console renderer and, optionally, a
// daily file writer with size-based rollover, each with its own format.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nowwaveradio/suitekit/internal/constants"
	"github.com/nowwaveradio/suitekit/internal/errorutil"
	"github.com/nowwaveradio/suitekit/pkg/dateutil"
)

// Config represents logging configuration
type Config struct {
	Level           string `toml:"level" yaml:"level" env:"LEVEL"`
	FileOutput      bool   `toml:"file_output" yaml:"file_output" env:"FILE_OUTPUT"`
	ConsoleOutput   bool   `toml:"console_output" yaml:"console_output" env:"CONSOLE_OUTPUT"`
	Directory       string `toml:"directory" yaml:"directory" env:"DIRECTORY"`
	FilenamePattern string `toml:"filename_pattern" yaml:"filename_pattern" env:"FILENAME_PATTERN"`
	ConsoleFormat   string `toml:"console_format" yaml:"console_format" env:"CONSOLE_FORMAT"`
	FileFormat      string `toml:"file_format" yaml:"file_format" env:"FILE_FORMAT"`
	TimeFormat      string `toml:"time_format" yaml:"time_format" env:"TIME_FORMAT"`
	MaxFiles        int    `toml:"max_files" yaml:"max_files" env:"MAX_FILES"`
	MaxSizeMB       int    `toml:"max_size_mb" yaml:"max_size_mb" env:"MAX_SIZE_MB"`
}

// Output formats understood by ConsoleFormat and FileFormat. Any other value
// containing a placeholder such as {message} is rendered as a pattern.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultConfig returns console-only text logging at info level.
func DefaultConfig() Config {
	return Config{
		Level:           "info",
		ConsoleOutput:   true,
		FilenamePattern: constants.DefaultLogFilenamePattern,
		ConsoleFormat:   FormatText,
		FileFormat:      FormatJSON,
		MaxFiles:        constants.DefaultMaxLogFiles,
		MaxSizeMB:       constants.DefaultMaxLogSizeMB,
	}
}

// Logger wraps slog.Logger with file management capabilities
type Logger struct {
	*slog.Logger
	config Config
	file   *dailyWriter
}

var (
	globalLogger *Logger
	initErr      error
	once         sync.Once
)

// consoleWriter is where console output goes; logs stay off stdout so
// command output can be piped.
var consoleWriter io.Writer = os.Stderr

// Initialize configures the process-wide logger. Only the first call does
// any work; later calls return the same logger and error, whatever config
// they pass. Callers keep the returned logger and hand it on explicitly.
func Initialize(config Config) (*Logger, error) {
	once.Do(func() {
		globalLogger, initErr = NewLogger(config)
	})
	return globalLogger, initErr
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging config: %w", err)
	}

	logger := &Logger{config: config}

	level := parseLogLevel(config.Level)
	timeLayout := constants.DefaultLogTimeLayout
	if config.TimeFormat != "" {
		timeLayout = dateutil.FormatDateToGoLayout(config.TimeFormat)
	}

	var handlers []slog.Handler

	if config.ConsoleOutput || !config.FileOutput {
		handlers = append(handlers, newHandler(consoleWriter, config.ConsoleFormat, level, timeLayout))
	}

	if config.FileOutput {
		logDir := expandLogDirectory(config.Directory)
		if err := errorutil.ValidateDirectory(logDir, "create log directory", true); err != nil {
			return nil, err
		}

		file, err := newDailyWriter(logDir, config.FilenamePattern, config.MaxFiles, config.MaxSizeMB)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger.file = file
		handlers = append(handlers, newHandler(file, config.FileFormat, level, timeLayout))
	}

	if len(handlers) == 1 {
		logger.Logger = slog.New(handlers[0])
	} else {
		logger.Logger = slog.New(&fanoutHandler{handlers: handlers})
	}

	logger.Debug("Logger initialized",
		slog.String("log_file", logger.FileName()),
		slog.String("level", level.String()),
		slog.Bool("console", config.ConsoleOutput))

	return logger, nil
}

// Config returns the configuration the logger was built with.
func (l *Logger) Config() Config {
	return l.config
}

// FileName returns the path of the current log file, or "" without file output.
func (l *Logger) FileName() string {
	if l.file == nil {
		return ""
	}
	return l.file.FileName()
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// newHandler builds the slog handler for one output and format.
func newHandler(w io.Writer, format string, level slog.Level, timeLayout string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 {
				return a
			}
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeLayout))
			}
			// Shorten source paths for readability
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(source.File), source.Line))
				}
			}
			return a
		},
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return slog.NewTextHandler(w, opts)
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	default:
		return newPatternHandler(w, format, level, timeLayout)
	}
}

// parseLogLevel converts string level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogExecutionSummary logs a formatted execution summary for audit purposes
func (l *Logger) LogExecutionSummary(startTime time.Time, configFile string, command string, results []string, exitCode int) {
	duration := time.Since(startTime)

	l.Debug("Execution summary",
		slog.Time("start_time", startTime),
		slog.String("config_file", configFile),
		slog.String("command", command),
		slog.Duration("total_duration", duration),
		slog.Int("exit_code", exitCode))

	for _, result := range results {
		l.Debug(result)
	}
}
