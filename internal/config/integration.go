package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ConfigFileName is the name of the YAML file inside the config directory.
const ConfigFileName = "config.yaml"

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Process-wide effective configuration
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Guards globalConfig
)

// SetGlobalConfig installs cfg as the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, or defaults when
// none has been installed.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg == nil {
		return New()
	}
	return cfg
}

// ResetGlobalConfigForTest clears the process-wide configuration.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetConfigDir returns the cryptoboard configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cryptoboard"), nil
}

// GetConfigPath returns the default config file path.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DefaultLogFile returns the log path used by the dashboard when none is configured.
func DefaultLogFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "cryptoboard.log"), nil
}
