package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/spf13/viper"

	"github.com/example/expense-tracker/pkg/tracker"
)

// EnvPrefix is prepended to every key when read from the environment,
// e.g. EXPENSES_DATA_FILE
const EnvPrefix = "EXPENSES"

// Config represents the application configuration
type Config struct {
	DataFile  string `mapstructure:"data_file"`
	Format    string `mapstructure:"format"` // "json", "csv" or empty to use the file extension
	Currency  string `mapstructure:"currency"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "console" or "json"
}

// LoadConfig loads configuration from file and environment variables. An
// empty configPath skips the file and uses defaults and environment only.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// Set defaults
	v.SetDefault("data_file", "movements.json")
	v.SetDefault("format", "")
	v.SetDefault("currency", "USD")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LedgerFormat returns the configured format, falling back to the data file
// extension
func (c *Config) LedgerFormat() (tracker.Format, error) {
	if c.Format != "" {
		return tracker.ParseFormat(c.Format)
	}
	return tracker.FormatFromPath(c.DataFile)
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.DataFile) == "" {
		errs = append(errs, errors.New("data_file must not be empty"))
	} else if _, err := c.LedgerFormat(); err != nil {
		errs = append(errs, fmt.Errorf("format: %w", err))
	}

	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("currency: unknown code %q", c.Currency))
	}

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}
