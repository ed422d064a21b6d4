// Command suitekit exposes the suite's date and text helpers on the command
// line: timezone conversion, ISO serialization, friendly dates and text cleanup.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/nowwaveradio/suitekit/internal/config"
	"github.com/nowwaveradio/suitekit/internal/errorutil"
	"github.com/nowwaveradio/suitekit/pkg/logger"
)

const defaultConfigFile = "suitekit.toml"

// session carries what every command needs once startup is done.
type session struct {
	cfg        *config.Config
	log        *logger.Logger
	configPath string
}

// setup loads configuration and initializes logging. A missing default
// config file is not an error; the defaults plus environment are used.
func setup(cmd *cli.Command) (*session, error) {
	configPath := cmd.String("config")

	cfg, err := config.LoadConfig(configPath)
	if errors.Is(err, config.ErrFileNotFound) && !cmd.IsSet("config") {
		configPath = ""
		cfg, err = config.FromEnvironment()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}

	log, err := logger.Initialize(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	return &session{cfg: cfg, log: log, configPath: configPath}, nil
}

// action wraps a command body with setup, operation logging and the
// execution summary.
func action(name string, fn func(ctx context.Context, cmd *cli.Command, s *session) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		start := time.Now()

		s, err := setup(cmd)
		if err != nil {
			return err
		}
		defer s.log.Close()

		err = errorutil.ExecuteWithLogging(s.log.Logger, name, func() error {
			return fn(ctx, cmd, s)
		}, errorutil.ConfigContext(s.configPath)...)

		exitCode := 0
		if err != nil {
			exitCode = 1
		}
		s.log.LogExecutionSummary(start, s.configPath, name, nil, exitCode)
		return err
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "suitekit",
		Usage: "Date, timezone and text normalization helpers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML or YAML config file",
				Value:   defaultConfigFile,
				Sources: cli.EnvVars("SUITEKIT_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			convertCommand(),
			isoCommand(),
			friendlyCommand(),
			cleanCommand(),
			initCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		slog.Error("suitekit failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
