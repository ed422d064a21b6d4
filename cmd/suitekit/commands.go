package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/nowwaveradio/suitekit/internal/config"
	"github.com/nowwaveradio/suitekit/internal/errorutil"
	"github.com/nowwaveradio/suitekit/pkg/dateutil"
	"github.com/nowwaveradio/suitekit/pkg/textutil"
)

var errMissingArgument = errors.New("missing argument")

func firstArg(cmd *cli.Command, name string) (string, error) {
	if cmd.Args().Len() == 0 {
		return "", fmt.Errorf("%w: %s", errMissingArgument, name)
	}
	return cmd.Args().First(), nil
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Re-express an ISO 8601 datetime in another timezone",
		ArgsUsage: "DATETIME",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tz", Usage: "Target IANA timezone (default from config)"},
		},
		Action: action("convert", func(ctx context.Context, cmd *cli.Command, s *session) error {
			value, err := firstArg(cmd, "DATETIME")
			if err != nil {
				return err
			}
			tz := s.cfg.Datetime.Timezone
			if cmd.IsSet("tz") {
				tz = cmd.String("tz")
			}

			converted, err := dateutil.ParseToTargetTimezone(value, tz)
			if err != nil {
				return errorutil.LogAndWrap(s.log.Logger, "convert timezone", err, errorutil.DatetimeContext(value, tz, "")...)
			}
			iso, err := dateutil.ToISOString(converted)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, iso)
			return err
		}),
	}
}

func isoCommand() *cli.Command {
	return &cli.Command{
		Name:      "iso",
		Usage:     "Normalize a datetime to ISO 8601 with an explicit offset",
		ArgsUsage: "DATETIME",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "assume-utc", Usage: "Treat values without an offset as UTC instead of failing"},
			&cli.StringFlag{Name: "format", Usage: "Render with a pattern such as \"DD/MM/YYYY HH:mm\" instead of ISO 8601"},
		},
		Action: action("iso", func(ctx context.Context, cmd *cli.Command, s *session) error {
			value, err := firstArg(cmd, "DATETIME")
			if err != nil {
				return err
			}

			ts, err := dateutil.ParseTimestamp(value)
			if err != nil {
				return err
			}
			if ts.IsNaive() && cmd.Bool("assume-utc") {
				errorutil.LogWarning(s.log.Logger, "iso normalization", &dateutil.NaiveTimestampError{Value: value})
				ts = ts.AssumeUTC()
			}

			// Patterns carry no offset token, so naive values render as read.
			if pattern := cmd.String("format"); pattern != "" {
				_, err = fmt.Fprintln(cmd.Root().Writer, dateutil.FormatDateWithPattern(ts.Time(), pattern))
				return err
			}

			iso, err := dateutil.ToISOString(ts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, iso)
			return err
		}),
	}
}

func friendlyCommand() *cli.Command {
	return &cli.Command{
		Name:      "friendly",
		Usage:     "Render an ISO date or datetime as a readable localized phrase",
		ArgsUsage: "DATE",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "locale", Aliases: []string{"l"}, Usage: "Locale such as es or en-US (default from config)"},
			&cli.StringFlag{Name: "tz", Usage: "Show datetimes in this IANA timezone"},
			&cli.BoolFlag{Name: "flexible", Usage: "Also accept dates like 16/01/2025, 2025/01/16 or 2025.01.16"},
		},
		Action: action("friendly", func(ctx context.Context, cmd *cli.Command, s *session) error {
			value, err := firstArg(cmd, "DATE")
			if err != nil {
				return err
			}
			locale := s.cfg.Datetime.Locale
			if cmd.IsSet("locale") {
				locale = cmd.String("locale")
			}

			if cmd.Bool("flexible") {
				if day, err := dateutil.ParseFlexibleDate(value); err == nil {
					s.log.Debug("Parsed flexible date", "input", value, "date", day.Format(time.DateOnly))
					value = day.Format(time.DateOnly)
				}
			}

			var out string
			if tz := cmd.String("tz"); tz != "" {
				out, err = dateutil.FormatFriendlyIn(value, locale, tz)
			} else {
				out, err = dateutil.FormatFriendly(value, locale)
			}
			if err != nil {
				return errorutil.LogAndWrap(s.log.Logger, "render friendly date", err,
					errorutil.DatetimeContext(value, cmd.String("tz"), locale)...)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, out)
			return err
		}),
	}
}

func cleanCommand() *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Dedent, collapse whitespace and strip headings from text, then fit it to a length",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "max-length", Usage: "Character limit (default from config)"},
			&cli.StringFlag{Name: "truncation-text", Usage: "Marker appended when text is cut"},
			&cli.BoolFlag{Name: "no-truncate", Usage: "Only clean, never truncate"},
		},
		Action: action("clean", func(ctx context.Context, cmd *cli.Command, s *session) error {
			raw, err := readInput(cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("no-truncate") {
				_, err = fmt.Fprintln(cmd.Root().Writer, textutil.CleanText(raw))
				return err
			}

			opts := textutil.FormatOptions{
				MaxLength:      s.cfg.Text.MaxLength,
				TruncationText: s.cfg.Text.TruncationText,
			}
			if cmd.IsSet("max-length") {
				opts.MaxLength = int(cmd.Int("max-length"))
			}
			if cmd.IsSet("truncation-text") {
				opts.TruncationText = cmd.String("truncation-text")
			}

			formatter := textutil.NewFormatterWithOptions(opts)
			if n := formatter.EstimateLength(raw); n > formatter.MaxLength() {
				s.log.Info("Text truncated", "length", n, "limit", formatter.MaxLength())
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, formatter.Format(raw))
			return err
		}),
	}
}

// readInput reads the file named by the first argument, or standard input
// when there is none or it is "-".
func readInput(cmd *cli.Command) (string, error) {
	path := cmd.Args().First()
	if path == "" || path == "-" {
		reader := cmd.Root().Reader
		if reader == nil {
			reader = os.Stdin
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	if err := errorutil.ValidateFileReadable(path, "read input"); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &errorutil.FileOpError{Operation: "read input", Path: path, Err: err}
	}
	return string(data), nil
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a config file populated with the defaults",
		ArgsUsage: "[PATH]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "Replace an existing file"},
		},
		Action: action("init", func(ctx context.Context, cmd *cli.Command, s *session) error {
			path := cmd.Args().First()
			if path == "" {
				path = defaultConfigFile
			}

			if err := config.SaveConfig(config.DefaultConfig(), path, cmd.Bool("force")); err != nil {
				return errorutil.LogAndWrap(s.log.Logger, "save config", err, errorutil.FileContext(path)...)
			}
			_, err := fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", path)
			return err
		}),
	}
}
