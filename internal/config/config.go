// Package config loads the suite's settings from a TOML or YAML file,
// applies SUITEKIT_* environment overrides and validates the result.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/nowwaveradio/suitekit/internal/constants"
	"github.com/nowwaveradio/suitekit/internal/errorutil"
	"github.com/nowwaveradio/suitekit/pkg/dateutil"
	"github.com/nowwaveradio/suitekit/pkg/logger"
)

// Config represents the main configuration structure
type Config struct {
	Logging  logger.Config  `toml:"logging" yaml:"logging" env-prefix:"SUITEKIT_LOG_"`
	Datetime DatetimeConfig `toml:"datetime" yaml:"datetime" env-prefix:"SUITEKIT_DATETIME_"`
	Text     TextConfig     `toml:"text" yaml:"text" env-prefix:"SUITEKIT_TEXT_"`
}

// DatetimeConfig holds the defaults for timezone conversion and friendly dates.
type DatetimeConfig struct {
	Timezone string `toml:"timezone" yaml:"timezone" env:"TIMEZONE"`
	Locale   string `toml:"locale" yaml:"locale" env:"LOCALE"`
}

// TextConfig holds the defaults for text cleanup and truncation.
type TextConfig struct {
	MaxLength      int    `toml:"max_length" yaml:"max_length" env:"MAX_LENGTH"`
	TruncationText string `toml:"truncation_text" yaml:"truncation_text" env:"TRUNCATION_TEXT"`
}

// ConfigError represents configuration-related errors
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	if e.Field != "" {
		return "config." + e.Field + ": " + e.Message
	}
	return e.Message
}

var (
	ErrFileNotFound  = errors.New("configuration file not found")
	ErrInvalidFormat = errors.New("invalid configuration file format")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: logger.DefaultConfig(),
		Datetime: DatetimeConfig{
			Timezone: constants.DefaultTimezone,
			Locale:   constants.DefaultLocale,
		},
		Text: TextConfig{
			MaxLength:      constants.DefaultMessageLimit,
			TruncationText: constants.DefaultTruncationText,
		},
	}
}

// LoadConfig reads a .toml, .yaml or .yml file on top of DefaultConfig,
// applies environment overrides and validates the result. Unknown keys are
// rejected so typos do not pass silently.
func LoadConfig(path string) (*Config, error) {
	if err := errorutil.ValidateFileReadable(path, "load config"); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := decodeTOML(path, cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := decodeYAML(path, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s: unsupported extension %q", ErrInvalidFormat, path, filepath.Ext(path))
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, path, err)
	}
	return cfg, nil
}

// FromEnvironment builds a configuration from defaults and SUITEKIT_*
// variables only.
func FromEnvironment() (*Config, error) {
	cfg := DefaultConfig()
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return cfg, nil
}

func decodeTOML(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: %s - %v", ErrInvalidFormat, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s: %w", ErrInvalidFormat, path,
			ConfigError{Field: undecoded[0].String(), Message: "unknown key"})
	}
	return nil
}

func decodeYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s - %v", ErrInvalidFormat, path, err)
	}
	return nil
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Logging),
		validation.Field(&c.Datetime),
		validation.Field(&c.Text),
	)
}

func (d DatetimeConfig) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Timezone, validation.Required, validation.By(func(value interface{}) error {
			_, err := dateutil.LoadTimezone(value.(string))
			return err
		})),
		validation.Field(&d.Locale, validation.By(func(value interface{}) error {
			return dateutil.ValidateLocale(value.(string))
		})),
	)
}

func (t TextConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.MaxLength, validation.Min(0)),
		validation.Field(&t.TruncationText, validation.RuneLength(0, 64)),
	)
}

// SaveConfig writes cfg to path as TOML, or as YAML for .yaml/.yml paths.
// An existing file is only replaced when overwrite is set.
func SaveConfig(cfg *Config, path string, overwrite bool) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return errorutil.SafeWriteFile(path, data, "save config", true, overwrite)
}
