package dateutil

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/nowwaveradio/suitekit/internal/constants"
)

// localeNames holds the spelled-out names and phrase shapes for one language.
type localeNames struct {
	weekdays [7]string  // indexed by time.Weekday
	months   [12]string // indexed by time.Month - 1
	date     func(n *localeNames, t time.Time) string
	clock    func(t time.Time) string
}

var spanish = &localeNames{
	weekdays: [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	months: [12]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	},
	date: func(n *localeNames, t time.Time) string {
		return fmt.Sprintf("%s, %d de %s de %d", n.weekdays[t.Weekday()], t.Day(), n.months[t.Month()-1], t.Year())
	},
	clock: func(t time.Time) string {
		return t.Format("15:04")
	},
}

var english = &localeNames{
	weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	months: [12]string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	},
	date: func(n *localeNames, t time.Time) string {
		return fmt.Sprintf("%s, %s %d, %d", n.weekdays[t.Weekday()], n.months[t.Month()-1], t.Day(), t.Year())
	},
	clock: func(t time.Time) string {
		return t.Format("3:04 PM")
	},
}

// Keyed by base language, so regional tags such as es-CO or en-GB share a table.
var friendlyLocales = map[string]*localeNames{
	"es": spanish,
	"en": english,
}

func supportedLocaleList() string {
	names := make([]string, 0, len(friendlyLocales))
	for name := range friendlyLocales {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func resolveLocale(locale string) (*localeNames, error) {
	if strings.TrimSpace(locale) == "" {
		locale = constants.DefaultLocale
	}

	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, &UnsupportedLocaleError{Locale: locale}
	}
	base, _ := tag.Base()

	names, ok := friendlyLocales[base.String()]
	if !ok {
		return nil, &UnsupportedLocaleError{Locale: locale}
	}
	return names, nil
}

// ValidateLocale reports whether FormatFriendly can render the locale.
func ValidateLocale(locale string) error {
	_, err := resolveLocale(locale)
	return err
}

// FormatFriendly renders an ISO date or datetime as a readable phrase in
// the given locale, e.g. "jueves, 16 de enero de 2025". Datetimes get the
// clock time appended in their own offset. An empty locale means Spanish.
func FormatFriendly(isoDate string, locale string) (string, error) {
	dateOnly, t, err := parseFriendlyInput(isoDate)
	if err != nil {
		return "", err
	}

	names, err := resolveLocale(locale)
	if err != nil {
		return "", err
	}

	return renderFriendly(names, t, dateOnly), nil
}

// FormatFriendlyIn behaves like FormatFriendly but first converts datetimes
// to the named timezone. Date-only values are rendered unchanged.
func FormatFriendlyIn(isoDate, locale, tz string) (string, error) {
	dateOnly, t, err := parseFriendlyInput(isoDate)
	if err != nil {
		return "", err
	}

	names, err := resolveLocale(locale)
	if err != nil {
		return "", err
	}

	if dateOnly {
		if _, err := LoadTimezone(tz); err != nil {
			return "", err
		}
	} else {
		t, err = ParseToTargetTimezone(isoDate, tz)
		if err != nil {
			return "", err
		}
	}

	return renderFriendly(names, t, dateOnly), nil
}

func parseFriendlyInput(isoDate string) (bool, time.Time, error) {
	value := strings.TrimSpace(isoDate)
	for _, layout := range []string{dateOnlyLayout, basicDateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return true, t, nil
		}
	}

	ts, err := ParseTimestamp(value)
	if err != nil {
		return false, time.Time{}, err
	}
	return false, ts.Time(), nil
}

func renderFriendly(names *localeNames, t time.Time, dateOnly bool) string {
	phrase := names.date(names, t)
	if dateOnly {
		return phrase
	}
	return phrase + ", " + names.clock(t)
}
