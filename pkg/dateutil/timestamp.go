package dateutil

import (
	"strings"
	"time"
)

// isoLayout is the canonical serialization: numeric offset always present,
// fractional seconds only when non-zero.
const isoLayout = "2006-01-02T15:04:05.999999999-07:00"

// isoSecondsOffsetLayout is used for historical offsets that are not a whole
// number of minutes, e.g. Bogota's -04:56:16 before 1914.
const isoSecondsOffsetLayout = "2006-01-02T15:04:05.999999999-07:00:00"

const naiveLayout = "2006-01-02T15:04:05.999999999"

// Layouts carrying "Z" or a numeric offset. Fractional seconds after the
// seconds field are accepted by time.Parse without being spelled out.
var awareLayouts = concatLayouts(
	joinLayouts([]string{"2006-01-02T", "2006-01-02 "}, []string{"15:04:05", "15:04"}, extendedOffsets),
	joinLayouts([]string{"2006-01-02T"}, []string{"15"}, extendedOffsets),
	joinLayouts([]string{"20060102T"}, basicClocks, []string{"Z0700", "Z07"}),
)

var naiveLayouts = concatLayouts(
	joinLayouts([]string{"2006-01-02T", "2006-01-02 "}, []string{"15:04:05", "15:04"}, []string{""}),
	[]string{"2006-01-02T15"},
	joinLayouts([]string{"20060102T"}, basicClocks, []string{""}),
	[]string{dateOnlyLayout, basicDateLayout},
)

var (
	extendedOffsets = []string{"Z07:00", "Z07:00:00", "Z0700", "Z07"}
	basicClocks     = []string{"150405", "1504", "15"}
)

// joinLayouts returns every date+clock+offset combination, in order.
func joinLayouts(dates, clocks, offsets []string) []string {
	var layouts []string
	for _, date := range dates {
		for _, clock := range clocks {
			for _, offset := range offsets {
				layouts = append(layouts, date+clock+offset)
			}
		}
	}
	return layouts
}

func concatLayouts(groups ...[]string) []string {
	var layouts []string
	for _, group := range groups {
		layouts = append(layouts, group...)
	}
	return layouts
}

const basicDateLayout = "20060102"

const dateOnlyLayout = "2006-01-02"

// Timestamp is an instant that may or may not carry timezone information.
// A naive Timestamp holds only a wall-clock reading; its zone is undefined
// until AssumeUTC (or a conversion) attaches one.
type Timestamp struct {
	t     time.Time
	aware bool
}

// Aware wraps t as a timezone-aware timestamp.
func Aware(t time.Time) Timestamp {
	return Timestamp{t: t, aware: true}
}

// Naive keeps the wall clock of t and drops its location.
func Naive(t time.Time) Timestamp {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Timestamp{t: time.Date(y, mo, d, h, mi, s, t.Nanosecond(), time.UTC)}
}

// ParseTimestamp parses an ISO 8601 date or datetime. Values with "Z" or a
// numeric offset are aware; everything else is naive.
func ParseTimestamp(s string) (Timestamp, error) {
	value := strings.TrimSpace(s)

	var lastErr error
	for _, layout := range awareLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return Aware(t), nil
		}
		lastErr = err
	}
	for _, layout := range naiveLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return Naive(t), nil
		}
		lastErr = err
	}

	return Timestamp{}, &ParseError{Value: s, Err: lastErr}
}

// IsNaive reports whether the timestamp carries no timezone.
func (ts Timestamp) IsNaive() bool {
	return !ts.aware
}

// Time returns the underlying time. For naive timestamps the location is UTC
// but carries no meaning.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// AssumeUTC attaches UTC to a naive timestamp. Aware timestamps are returned unchanged.
func (ts Timestamp) AssumeUTC() Timestamp {
	if ts.aware {
		return ts
	}
	return Aware(ts.t.UTC())
}

func (ts Timestamp) String() string {
	if ts.aware {
		return formatISO(ts.t)
	}
	return ts.t.Format(naiveLayout)
}

// formatISO writes t with its offset, adding a seconds field only when the
// offset has one so the output parses back to the same instant.
func formatISO(t time.Time) string {
	if _, offset := t.Zone(); offset%60 != 0 {
		return t.Format(isoSecondsOffsetLayout)
	}
	return t.Format(isoLayout)
}
