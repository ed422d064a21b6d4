package dateutil

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrParse             = errors.New("invalid ISO 8601 value")
	ErrUnknownTimezone   = errors.New("unknown timezone")
	ErrNaiveTimestamp    = errors.New("timestamp has no timezone")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)

// ParseError reports a value that is not a valid ISO 8601 date or datetime.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: not a valid ISO 8601 date or datetime", e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnknownTimezoneError reports a name missing from the IANA timezone database.
type UnknownTimezoneError struct {
	Name string
	Err  error
}

func (e *UnknownTimezoneError) Error() string {
	return fmt.Sprintf("unknown timezone %q", e.Name)
}

func (e *UnknownTimezoneError) Unwrap() error {
	return e.Err
}

func (e *UnknownTimezoneError) Is(target error) bool {
	return target == ErrUnknownTimezone
}

// NaiveTimestampError reports an attempt to serialize a timestamp with no zone.
type NaiveTimestampError struct {
	Value string
}

func (e *NaiveTimestampError) Error() string {
	return fmt.Sprintf("timestamp %s has no timezone; attach one before serializing", e.Value)
}

func (e *NaiveTimestampError) Is(target error) bool {
	return target == ErrNaiveTimestamp
}

// UnsupportedLocaleError reports a locale with no friendly-date table.
type UnsupportedLocaleError struct {
	Locale string
}

func (e *UnsupportedLocaleError) Error() string {
	return fmt.Sprintf("unsupported locale %q (supported: %s)", e.Locale, supportedLocaleList())
}

func (e *UnsupportedLocaleError) Is(target error) bool {
	return target == ErrUnsupportedLocale
}
