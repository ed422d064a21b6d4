// Package dateutil provides the date and time helpers shared across the suite:
// converting ISO 8601 values between IANA timezones, serializing aware
// instants, rendering human-friendly localized dates, and translating
// user-friendly date patterns into Go time layouts.
package dateutil

import (
	"strings"
	"time"
)

// patternReplacer maps user-friendly tokens to Go reference-time tokens.
// Longer tokens are listed first so "YYYY" never matches as two "YY".
var patternReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
	"HH", "15",
	"mm", "04",
	"ss", "05",
	"SSS", "000",
)

// FormatDateToGoLayout converts user-friendly date format patterns to Go time reference patterns.
// Supports patterns like "YYYY", "MM", "DD", "HH", "mm", "ss" consistent across the suite.
//
// Example conversions:
//   - "YYYY" -> "2006" (4-digit year)
//   - "MM" -> "01" (2-digit month with leading zero)
//   - "DD" -> "02" (2-digit day with leading zero)
//   - "M/D/YYYY" -> "1/2/2006"
//   - "YYYY-MM-DD HH:mm:ss.SSS" -> "2006-01-02 15:04:05.000"
func FormatDateToGoLayout(userFormat string) string {
	return patternReplacer.Replace(userFormat)
}

// FormatDateWithPattern formats a time using a user-friendly pattern.
func FormatDateWithPattern(t time.Time, userPattern string) string {
	return t.Format(FormatDateToGoLayout(userPattern))
}

// ParseFlexibleDate attempts to parse a date string using various common formats.
// This handles the different shapes users type into config files and CLI flags.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	// Ordered by likelihood; ISO first since it is unambiguous.
	formats := []string{
		"2006-01-02",
		"2006/01/02",
		"1/2/2006",
		"01/02/2006",
		"2/1/2006",
		"02/01/2006",
		"1-2-2006",
		"01-02-2006",
		"2006.01.02",
		"20060102",
	}

	for _, format := range formats {
		if parsed, err := time.Parse(format, strings.TrimSpace(dateStr)); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, &ParseError{
		Value: dateStr,
		Err: &time.ParseError{
			Layout: "multiple common formats",
			Value:  dateStr,
		},
	}
}
