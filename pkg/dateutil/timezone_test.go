package dateutil

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToTargetTimezone_Bogota(t *testing.T) {
	got, err := ParseToTargetTimezone("2025-01-16T15:04:09Z", "America/Bogota")
	require.NoError(t, err)

	assert.Equal(t, "America/Bogota", got.Location().String())
	assert.Equal(t, 10, got.Hour())
	assert.Equal(t, 4, got.Minute())
	assert.Equal(t, 9, got.Second())
	assert.True(t, got.Equal(time.Date(2025, 1, 16, 15, 4, 9, 0, time.UTC)), "absolute instant must not move")

	_, offset := got.Zone()
	assert.Equal(t, -5*3600, offset)
}

func TestParseToTargetTimezone_NaiveIsUTC(t *testing.T) {
	tests := []struct {
		name  string
		naive string
		aware string
	}{
		{"datetime", "2025-01-16T15:04:09", "2025-01-16T15:04:09Z"},
		{"space separator", "2025-01-16 15:04:09", "2025-01-16T15:04:09+00:00"},
		{"minutes only", "2025-01-16T15:04", "2025-01-16T15:04:00Z"},
		{"fractional seconds", "2025-01-16T15:04:09.123456", "2025-01-16T15:04:09.123456Z"},
		{"date only", "2025-01-16", "2025-01-16T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromNaive, err := ParseToTargetTimezone(tt.naive, "Asia/Tokyo")
			require.NoError(t, err)
			fromAware, err := ParseToTargetTimezone(tt.aware, "Asia/Tokyo")
			require.NoError(t, err)

			assert.True(t, fromNaive.Equal(fromAware), "naive %s should equal %s", tt.naive, tt.aware)
			assert.Equal(t, fromAware.Format(time.RFC3339Nano), fromNaive.Format(time.RFC3339Nano))
		})
	}
}

func TestParseToTargetTimezone_Instants(t *testing.T) {
	plus3 := time.FixedZone("", 3*3600)
	wall := time.Date(2025, 3, 1, 12, 0, 0, 0, plus3)

	t.Run("aware time.Time keeps its instant", func(t *testing.T) {
		got, err := ParseToTargetTimezone(wall, "UTC")
		require.NoError(t, err)
		assert.Equal(t, 9, got.Hour())
		assert.True(t, got.Equal(wall))
	})

	t.Run("naive timestamp drops the zone and assumes UTC", func(t *testing.T) {
		got, err := ParseToTargetTimezone(Naive(wall), "UTC")
		require.NoError(t, err)
		assert.Equal(t, 12, got.Hour())
		assert.True(t, got.Equal(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("aware timestamp", func(t *testing.T) {
		got, err := ParseToTargetTimezone(Aware(wall), "Europe/Madrid")
		require.NoError(t, err)
		assert.Equal(t, 10, got.Hour())
	})
}

func TestParseToTargetTimezone_Errors(t *testing.T) {
	t.Run("malformed string", func(t *testing.T) {
		_, err := ParseToTargetTimezone("not-a-date", "UTC")
		require.Error(t, err)

		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "not-a-date", parseErr.Value)
		assert.ErrorIs(t, err, ErrParse)
	})

	tests := []string{"Mars/Olympus_Mons", "", "Local", "america/bogota "}
	for _, name := range tests {
		t.Run("unknown timezone "+name, func(t *testing.T) {
			_, err := ParseToTargetTimezone("2025-01-16T15:04:09Z", name)
			require.Error(t, err)

			var tzErr *UnknownTimezoneError
			require.True(t, errors.As(err, &tzErr))
			assert.Equal(t, name, tzErr.Name)
			assert.ErrorIs(t, err, ErrUnknownTimezone)
		})
	}
}

func TestToISOString(t *testing.T) {
	bogota, err := LoadTimezone("America/Bogota")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"whole seconds", time.Date(2025, 1, 16, 10, 4, 9, 0, bogota), "2025-01-16T10:04:09-05:00"},
		{"microseconds", time.Date(2025, 1, 16, 10, 4, 9, 123456000, bogota), "2025-01-16T10:04:09.123456-05:00"},
		{"nanoseconds", time.Date(2025, 1, 16, 10, 4, 9, 1, bogota), "2025-01-16T10:04:09.000000001-05:00"},
		{"utc uses numeric offset", time.Date(2025, 1, 16, 15, 4, 9, 0, time.UTC), "2025-01-16T15:04:09+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToISOString(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			fromTimestamp, err := ToISOString(Aware(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fromTimestamp)
		})
	}
}

func TestToISOString_Naive(t *testing.T) {
	ts, err := ParseTimestamp("2025-01-16T15:04:09")
	require.NoError(t, err)
	require.True(t, ts.IsNaive())

	_, err = ToISOString(ts)
	require.Error(t, err)

	var naiveErr *NaiveTimestampError
	require.True(t, errors.As(err, &naiveErr))
	assert.Equal(t, "2025-01-16T15:04:09", naiveErr.Value)
	assert.ErrorIs(t, err, ErrNaiveTimestamp)

	_, err = ToISOString(ts.AssumeUTC())
	assert.NoError(t, err)
}

func TestISORoundTrip(t *testing.T) {
	inputs := []string{
		"2025-01-16T15:04:09Z",
		"2025-01-16T15:04:09.5+02:00",
		"2024-02-29T23:59:59-0300",
		"2025-07-01 00:00:00",
		"2025-03-30T01:30:00.123456789Z",
	}
	zones := []string{"UTC", "America/Bogota", "Europe/Madrid", "Asia/Kolkata", "Australia/Lord_Howe"}

	for _, in := range inputs {
		original, err := ParseTimestamp(in)
		require.NoError(t, err)

		for _, tz := range zones {
			converted, err := ParseToTargetTimezone(in, tz)
			require.NoError(t, err)

			iso, err := ToISOString(converted)
			require.NoError(t, err)

			back, err := time.Parse(time.RFC3339Nano, iso)
			require.NoError(t, err, "output %q must be valid RFC 3339", iso)
			assert.True(t, back.Equal(original.AssumeUTC().Time()), "%s in %s -> %s", in, tz, iso)

			_, wantOffset := converted.Zone()
			_, gotOffset := back.Zone()
			assert.Equal(t, wantOffset, gotOffset)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	utc := func(h, m, sec int) time.Time { return time.Date(2025, 1, 16, h, m, sec, 0, time.UTC) }

	tests := []struct {
		in        string
		wantNaive bool
		want      time.Time
	}{
		{"2025-01-16T15:04:09Z", false, utc(15, 4, 9)},
		{"2025-01-16T15:04:09+05:30", false, utc(9, 34, 9)},
		{"2025-01-16 15:04:09-0800", false, utc(23, 4, 9)},
		{"2025-01-16T15:04Z", false, utc(15, 4, 0)},
		{"2025-01-16T15:04:09+05", false, utc(10, 4, 9)},
		{"2025-01-16T15:04+0530", false, utc(9, 34, 0)},
		{"2025-01-16T15:04-03", false, utc(18, 4, 0)},
		{"2025-01-16T15Z", false, utc(15, 0, 0)},
		{"2025-01-16T15+01:00", false, utc(14, 0, 0)},
		{"2025-01-16T15:04:09-04:56:16", false, utc(20, 0, 25)},
		{"20250116T150409Z", false, utc(15, 4, 9)},
		{"20250116T150409.25+0100", false, utc(14, 4, 9).Add(250 * time.Millisecond)},
		{"20250116T1504-05", false, utc(20, 4, 0)},
		{"2025-01-16T15:04:09", true, utc(15, 4, 9)},
		{"2025-01-16T15", true, utc(15, 0, 0)},
		{"20250116T150409", true, utc(15, 4, 9)},
		{"20250116T15", true, utc(15, 0, 0)},
		{"2025-01-16", true, utc(0, 0, 0)},
		{"20250116", true, utc(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNaive, ts.IsNaive())
			assert.True(t, ts.AssumeUTC().Time().Equal(tt.want), "got %s, want %s", ts.AssumeUTC().Time(), tt.want)
		})
	}

	for _, bad := range []string{
		"", "2025-13-01", "2025-01-16T25:00:00", "16/01/2025", "2025-01-16T15:04:09+5",
		"2025-01-16T15:04:09+05:3", "20250116T", "2025011", "2025-01-16T15:04:09 UTC",
	} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseTimestamp(bad)
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestISORoundTrip_OffsetSeconds(t *testing.T) {
	tests := []struct {
		name    string
		instant time.Time
		tz      string
		suffix  string
	}{
		{"bogota mean time", time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), "America/Bogota", "-04:56:16"},
		{"amsterdam 1880", time.Date(1880, 6, 1, 12, 0, 0, 0, time.UTC), "Europe/Amsterdam", ""},
		{"modern bogota", time.Date(2025, 1, 16, 15, 4, 9, 0, time.UTC), "America/Bogota", "-05:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			converted, err := ParseToTargetTimezone(tt.instant, tt.tz)
			require.NoError(t, err)

			iso, err := ToISOString(converted)
			require.NoError(t, err)
			if tt.suffix != "" {
				assert.True(t, strings.HasSuffix(iso, tt.suffix), "%s should end in %s", iso, tt.suffix)
			}

			back, err := ParseTimestamp(iso)
			require.NoError(t, err)
			assert.False(t, back.IsNaive())
			assert.True(t, back.Time().Equal(tt.instant), "%s parsed back as %s", iso, back.Time().UTC())

			_, wantOffset := converted.Zone()
			_, gotOffset := back.Time().Zone()
			assert.Equal(t, wantOffset, gotOffset)
			assert.Equal(t, iso, Aware(converted).String())
		})
	}
}
