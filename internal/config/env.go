package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvFile is the optional dotenv file read from the working directory.
const DotEnvFile = ".env"

// Environment variable names.
const (
	EnvHome            = "CRYPTOBOARD_HOME"
	EnvAPIBaseURL      = "CRYPTOBOARD_API_BASE_URL"
	EnvVsCurrency      = "CRYPTOBOARD_VS_CURRENCY"
	EnvPerPage         = "CRYPTOBOARD_PER_PAGE"
	EnvAPITimeout      = "CRYPTOBOARD_API_TIMEOUT"
	EnvRefreshInterval = "CRYPTOBOARD_REFRESH_INTERVAL"
	EnvErrorMode       = "CRYPTOBOARD_ERROR_MODE"
	EnvDefaultSort     = "CRYPTOBOARD_DEFAULT_SORT"
	EnvLogLevel        = "CRYPTOBOARD_LOG_LEVEL"
	EnvLogFormat       = "CRYPTOBOARD_LOG_FORMAT"
	EnvLogFile         = "CRYPTOBOARD_LOG_FILE"
)

// LoadDotEnv loads variables from path into the process environment.
// Variables already set are not overridden. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from CRYPTOBOARD_* environment variables.
func (c *Config) ApplyEnv() error {
	setString(&c.API.BaseURL, EnvAPIBaseURL)
	setString(&c.API.VsCurrency, EnvVsCurrency)
	setString(&c.Display.ErrorMode, EnvErrorMode)
	setString(&c.Display.DefaultSort, EnvDefaultSort)
	setString(&c.Logging.Level, EnvLogLevel)
	setString(&c.Logging.Format, EnvLogFormat)
	setString(&c.Logging.File, EnvLogFile)

	if v := os.Getenv(EnvPerPage); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvPerPage, v)
		}
		c.API.PerPage = n
	}
	if err := setDuration(&c.API.Timeout, EnvAPITimeout); err != nil {
		return err
	}
	return setDuration(&c.Refresh.Interval, EnvRefreshInterval)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("90s", "2m") or a bare number of seconds.
func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a duration", ErrInvalidConfig, key, v)
	}
	*dst = d
	return nil
}
