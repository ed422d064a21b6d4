package logger

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/nowwaveradio/suitekit/internal/constants"
)

// FilenameValidationError represents an error in filename pattern validation
type FilenameValidationError struct {
	Pattern      string
	InvalidChars []rune
	Platform     string
	Suggestion   string
	Reason       string
}

func (e *FilenameValidationError) Error() string {
	charList := make([]string, len(e.InvalidChars))
	for i, char := range e.InvalidChars {
		charList[i] = fmt.Sprintf("'%c'", char)
	}

	msg := fmt.Sprintf("invalid filename pattern %q contains invalid characters: %s",
		e.Pattern, strings.Join(charList, ", "))
	if e.Reason != "" {
		msg = fmt.Sprintf("invalid filename pattern %q: %s", e.Pattern, e.Reason)
	}

	if e.Platform != "all" {
		msg += fmt.Sprintf(" (invalid on %s)", e.Platform)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// Validate checks the logging configuration. Unknown levels and formats,
// negative limits and unsafe filename patterns are rejected.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Level, validation.By(validateLevel)),
		validation.Field(&c.ConsoleFormat, validation.By(validateFormat)),
		validation.Field(&c.FileFormat, validation.By(validateFormat)),
		validation.Field(&c.FilenamePattern,
			validation.When(c.FileOutput, validation.Required),
			validation.By(func(value interface{}) error {
				return ValidateFilenamePattern(value.(string))
			})),
		validation.Field(&c.MaxFiles, validation.Min(0)),
		validation.Field(&c.MaxSizeMB, validation.Min(0)),
	)
}

func validateLevel(value interface{}) error {
	level, _ := value.(string)
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q", level)
}

// validateFormat accepts text, json, or a pattern with at least one placeholder.
func validateFormat(value interface{}) error {
	format, _ := value.(string)
	switch strings.ToLower(format) {
	case "", FormatText, FormatJSON:
		return nil
	}
	if !placeholderRe.MatchString(format) {
		return errors.New("must be text, json, or a pattern containing {message}-style placeholders")
	}
	return nil
}

// ValidateFilenamePattern validates that a filename pattern is a plain file
// name, safe for the current platform. Directories belong in Config.Directory.
func ValidateFilenamePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	if pattern == "." || pattern == ".." {
		return &FilenameValidationError{
			Pattern:    pattern,
			Platform:   "all",
			Reason:     "names a directory, not a file",
			Suggestion: constants.DefaultLogFilenamePattern,
		}
	}

	if strings.ContainsAny(pattern, "/\\") {
		return &FilenameValidationError{
			Pattern:      pattern,
			InvalidChars: []rune{'/', '\\'},
			Platform:     "all",
			Suggestion:   suggestFilename(pattern, []rune{'/', '\\'}),
		}
	}

	invalidChars := findInvalidChars(pattern)
	if len(invalidChars) > 0 {
		platform := "all"
		if runtime.GOOS == "windows" {
			platform = "Windows"
		}
		return &FilenameValidationError{
			Pattern:      pattern,
			InvalidChars: invalidChars,
			Platform:     platform,
			Suggestion:   suggestFilename(pattern, invalidChars),
		}
	}

	return nil
}

// findInvalidChars returns the characters of filename the platform rejects.
func findInvalidChars(filename string) []rune {
	var invalid []rune

	if strings.ContainsRune(filename, '\x00') {
		invalid = append(invalid, '\x00')
	}

	if runtime.GOOS == "windows" {
		for _, char := range []rune{'<', '>', ':', '"', '|', '?', '*'} {
			if strings.ContainsRune(filename, char) {
				invalid = append(invalid, char)
			}
		}
	}

	return invalid
}

// suggestFilename provides a safe alternative pattern
func suggestFilename(pattern string, invalidChars []rune) string {
	replacements := map[rune]string{
		'/':    "-", // %m/%d -> %m-%d
		'\\':   "-",
		':':    "-", // %H:%M -> %H-%M
		'|':    "-",
		'*':    "X",
		'?':    "X",
		'<':    "",
		'>':    "",
		'"':    "",
		'\x00': "",
	}

	suggestion := pattern
	for _, char := range invalidChars {
		if replacement, exists := replacements[char]; exists {
			suggestion = strings.ReplaceAll(suggestion, string(char), replacement)
		}
	}

	for strings.Contains(suggestion, "--") {
		suggestion = strings.ReplaceAll(suggestion, "--", "-")
	}
	return suggestion
}
