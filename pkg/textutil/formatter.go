package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/nowwaveradio/suitekit/internal/constants"
)

// Formatter cleans text blocks and fits them into a character limit
// (message bodies, notification previews) without cutting a line in half.
type Formatter struct {
	maxLength      int
	truncationText string
}

// FormatOptions provides configuration for formatting behavior
type FormatOptions struct {
	MaxLength      int    // Maximum length in runes (default: constants.DefaultMessageLimit)
	TruncationText string // Appended on its own line when truncated (default: "...")
}

// DefaultFormatOptions returns the default formatting configuration
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		MaxLength:      constants.DefaultMessageLimit,
		TruncationText: constants.DefaultTruncationText,
	}
}

// NewFormatter creates a new Formatter instance with default settings
func NewFormatter() *Formatter {
	return NewFormatterWithOptions(DefaultFormatOptions())
}

// NewFormatterWithOptions creates a new Formatter with custom options.
// Non-positive lengths and empty truncation text fall back to the defaults.
func NewFormatterWithOptions(options FormatOptions) *Formatter {
	maxLen := options.MaxLength
	if maxLen <= 0 {
		maxLen = constants.DefaultMessageLimit
	}
	truncation := options.TruncationText
	if truncation == "" {
		truncation = constants.DefaultTruncationText
	}

	return &Formatter{
		maxLength:      maxLen,
		truncationText: truncation,
	}
}

// MaxLength returns the current character limit setting
func (f *Formatter) MaxLength() int {
	return f.maxLength
}

// Format cleans raw with CleanText and truncates the result to the limit.
func (f *Formatter) Format(raw string) string {
	return f.TruncateLines(CleanText(raw))
}

// TruncateLines cuts text at line boundaries so the result, including the
// truncation text on its own line, fits in the limit. Text already within
// the limit is returned unchanged.
func (f *Formatter) TruncateLines(text string) string {
	if utf8.RuneCountInString(text) <= f.maxLength {
		return text
	}

	truncLen := utf8.RuneCountInString(f.truncationText)

	// Room for the kept lines plus the newline before the truncation text.
	availableLength := f.maxLength - truncLen - 1
	if availableLength <= 0 {
		if f.maxLength < truncLen {
			return string([]rune(f.truncationText)[:f.maxLength])
		}
		return f.truncationText
	}

	lines := strings.Split(text, "\n")

	// A first line that does not fit leaves only the truncation text.
	if utf8.RuneCountInString(lines[0]) > availableLength {
		return f.truncationText
	}

	var result strings.Builder
	totalLength := 0

	for i, line := range lines {
		newLength := totalLength + utf8.RuneCountInString(line)
		if i > 0 {
			newLength++
		}
		if newLength > availableLength {
			break
		}

		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(line)
		totalLength = newLength
	}

	// Do not end the kept part on a dangling paragraph break.
	kept := strings.TrimRight(result.String(), "\n")
	if kept == "" {
		return f.truncationText
	}
	return kept + "\n" + f.truncationText
}

// EstimateLength returns the rune length Format would produce before truncation.
func (f *Formatter) EstimateLength(raw string) int {
	return utf8.RuneCountInString(CleanText(raw))
}
