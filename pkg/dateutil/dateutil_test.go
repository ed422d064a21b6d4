package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateToGoLayout(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"M/D/YYYY":                "1/2/2006",
		"DD/MM/YY":                "02/01/06",
		"YYYYMMDD":                "20060102",
		"YYYY-MM-DD HH:mm:ss.SSS": "2006-01-02 15:04:05.000",
		"[YYYY] at HH:mm":         "[2006] at 15:04",
	}

	for pattern, want := range tests {
		assert.Equal(t, want, FormatDateToGoLayout(pattern), "pattern %q", pattern)
	}
}

// Every token must survive a format/parse cycle through time.Parse.
func TestFormatDateWithPattern(t *testing.T) {
	instant := time.Date(2024, 2, 9, 7, 3, 5, 42_000_000, time.UTC)

	tests := []struct {
		pattern string
		want    string
	}{
		{"DD/MM/YYYY HH:mm", "09/02/2024 07:03"},
		{"D.M.YY", "9.2.24"},
		{"YYYY-MM-DDTHH:mm:ss.SSS", "2024-02-09T07:03:05.042"},
		{"HHmmss", "070305"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := FormatDateWithPattern(instant, tt.pattern)
			assert.Equal(t, tt.want, got)

			back, err := time.Parse(FormatDateToGoLayout(tt.pattern), got)
			require.NoError(t, err)
			assert.Equal(t, got, FormatDateWithPattern(back, tt.pattern))
		})
	}
}

func TestParseFlexibleDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-02-09", day(2024, 2, 9)},
		{"2024/02/09", day(2024, 2, 9)},
		{"2024.02.09", day(2024, 2, 9)},
		{"20240209", day(2024, 2, 9)},
		{" 2024-02-09\n", day(2024, 2, 9)},
		// Month-first wins when both readings are valid.
		{"2/9/2024", day(2024, 2, 9)},
		{"02-09-2024", day(2024, 2, 9)},
		// Day-first is used once the first field cannot be a month.
		{"16/01/2025", day(2025, 1, 16)},
		{"31/12/1999", day(1999, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}

	for _, bad := range []string{"", "yesterday", "2024-02-30", "32/13/2024", "2024-02-09T10:00:00Z"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseFlexibleDate(bad)
			require.ErrorIs(t, err, ErrParse)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, bad, parseErr.Value)
		})
	}
}
