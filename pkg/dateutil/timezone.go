package dateutil

import (
	"fmt"
	"time"

	// Embed the IANA database so conversions work on hosts without zoneinfo.
	_ "time/tzdata"
)

// Input is anything ParseToTargetTimezone accepts: an ISO 8601 string, an
// aware time.Time, or a Timestamp that may be naive.
type Input interface {
	string | time.Time | Timestamp
}

// Instant is anything ToISOString can serialize.
type Instant interface {
	time.Time | Timestamp
}

// LoadTimezone resolves an IANA timezone name. The empty name and "Local"
// are rejected since neither names a zone in the database.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, &UnknownTimezoneError{Name: name}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &UnknownTimezoneError{Name: name, Err: err}
	}
	return loc, nil
}

// ParseToTargetTimezone re-expresses value in the named IANA timezone,
// preserving the absolute instant. Strings are parsed as ISO 8601 and naive
// values are taken to be UTC.
func ParseToTargetTimezone[T Input](value T, tz string) (time.Time, error) {
	ts, err := toTimestamp(value)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := LoadTimezone(tz)
	if err != nil {
		return time.Time{}, err
	}

	return ts.AssumeUTC().Time().In(loc), nil
}

// ToISOString serializes an aware instant as ISO 8601 with its UTC offset.
// Sub-second precision is kept when present.
func ToISOString[T Instant](value T) (string, error) {
	var ts Timestamp
	switch v := any(value).(type) {
	case time.Time:
		ts = Aware(v)
	case Timestamp:
		ts = v
	}

	if ts.IsNaive() {
		return "", &NaiveTimestampError{Value: ts.String()}
	}
	return formatISO(ts.Time()), nil
}

func toTimestamp[T Input](value T) (Timestamp, error) {
	switch v := any(value).(type) {
	case string:
		return ParseTimestamp(v)
	case time.Time:
		return Aware(v), nil
	case Timestamp:
		return v, nil
	default:
		return Timestamp{}, fmt.Errorf("unsupported input type %T", value)
	}
}
