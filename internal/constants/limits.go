package constants

// Logging defaults
const (
	// DefaultMaxLogFiles to keep in rotation
	DefaultMaxLogFiles = 7

	// DefaultMaxLogSizeMB per log file before a size-based rollover
	DefaultMaxLogSizeMB = 10

	// DefaultLogFilenamePattern produces one file per day
	DefaultLogFilenamePattern = "suitekit-%Y%m%d.log"

	// DefaultLogTimeLayout is used when no time format override is configured
	DefaultLogTimeLayout = "2006-01-02T15:04:05.000-07:00"
)

// Datetime defaults
const (
	// DefaultLocale for friendly date rendering
	DefaultLocale = "es"

	// DefaultTimezone used by the CLI when no target timezone is given
	DefaultTimezone = "America/Bogota"
)

// Text defaults
const (
	// DefaultMessageLimit is the character limit applied by textutil.Formatter
	DefaultMessageLimit = 4096

	// DefaultTruncationText is appended when text is cut at a line boundary
	DefaultTruncationText = "..."
)
