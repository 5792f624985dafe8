// Package config loads cryptoboard settings.
//
// Values are layered, later layers winning: built-in defaults from New, the
// YAML file (~/.cryptoboard/config.yaml or $CRYPTOBOARD_HOME/config.yaml), a
// .env file in the working directory, CRYPTOBOARD_* environment variables and
// finally command-line flags applied by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rshade/cryptoboard/internal/market"
	"github.com/rshade/cryptoboard/internal/refresh"
)

// Error presentation modes.
const (
	ErrorModeBanner = "banner"
	ErrorModePanel  = "panel"
)

// Limits enforced by Validate.
const (
	MinPerPage      = 1
	MaxPerPage      = 250
	MinRefreshEvery = time.Second
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete cryptoboard configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Refresh RefreshConfig `yaml:"refresh"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig describes the market-data endpoint.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	VsCurrency string        `yaml:"vs_currency"`
	PerPage    int           `yaml:"per_page"`
	Timeout    time.Duration `yaml:"timeout"`
}

// RefreshConfig controls the refresh scheduler.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// DisplayConfig controls the dashboard.
type DisplayConfig struct {
	ErrorMode string `yaml:"error_mode"`
	// DefaultSort is a sort expression such as "market_cap:desc"; empty keeps API order.
	DefaultSort string `yaml:"default_sort"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    market.DefaultBaseURL,
			VsCurrency: market.DefaultVsCurrency,
			PerPage:    market.DefaultPerPage,
			Timeout:    market.DefaultTimeout,
		},
		Refresh: RefreshConfig{
			Interval: refresh.DefaultInterval,
		},
		Display: DisplayConfig{
			ErrorMode: ErrorModeBanner,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the effective configuration. An empty path selects the default
// config file, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		defaultPath, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := LoadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url must not be empty", ErrInvalidConfig)
	}
	if c.API.VsCurrency == "" {
		return fmt.Errorf("%w: api.vs_currency must not be empty", ErrInvalidConfig)
	}
	if c.API.PerPage < MinPerPage || c.API.PerPage > MaxPerPage {
		return fmt.Errorf("%w: api.per_page must be between %d and %d, got %d",
			ErrInvalidConfig, MinPerPage, MaxPerPage, c.API.PerPage)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must not be negative", ErrInvalidConfig)
	}
	if c.Refresh.Interval < MinRefreshEvery {
		return fmt.Errorf("%w: refresh.interval must be at least %s, got %s",
			ErrInvalidConfig, MinRefreshEvery, c.Refresh.Interval)
	}
	switch c.Display.ErrorMode {
	case ErrorModeBanner, ErrorModePanel:
	default:
		return fmt.Errorf("%w: display.error_mode must be %q or %q, got %q",
			ErrInvalidConfig, ErrorModeBanner, ErrorModePanel, c.Display.ErrorMode)
	}
	return nil
}
