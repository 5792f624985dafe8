package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/cryptoboard/internal/config"
)

// writeConfig is a test helper that writes YAML content to a temp file
// and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleSection(t *testing.T) {
	target := config.New()
	path := writeConfig(t, `
refresh:
  interval: 30s
`)

	require.NoError(t, config.ShallowMergeYAML(target, path))

	assert.Equal(t, 30*time.Second, target.Refresh.Interval)
	// Other sections keep their defaults.
	assert.Equal(t, "eur", target.API.VsCurrency)
	assert.Equal(t, config.ErrorModeBanner, target.Display.ErrorMode)
}

func TestShallowMergeYAML_PartialSectionKeepsDefaults(t *testing.T) {
	target := config.New()
	path := writeConfig(t, `
api:
  vs_currency: usd
  timeout: 3s
`)

	require.NoError(t, config.ShallowMergeYAML(target, path))

	assert.Equal(t, "usd", target.API.VsCurrency)
	assert.Equal(t, 3*time.Second, target.API.Timeout)
	assert.Equal(t, "https://api.coingecko.com/api/v3", target.API.BaseURL)
	assert.Equal(t, 50, target.API.PerPage)
}

func TestShallowMergeYAML_AllSections(t *testing.T) {
	target := config.New()
	path := writeConfig(t, `
api:
  base_url: http://localhost:8080
  per_page: 100
refresh:
  interval: 2m
display:
  error_mode: panel
  default_sort: market_cap:desc
logging:
  level: debug
  format: console
  file: /tmp/cb.log
`)

	require.NoError(t, config.ShallowMergeYAML(target, path))

	assert.Equal(t, "http://localhost:8080", target.API.BaseURL)
	assert.Equal(t, 100, target.API.PerPage)
	assert.Equal(t, 2*time.Minute, target.Refresh.Interval)
	assert.Equal(t, config.ErrorModePanel, target.Display.ErrorMode)
	assert.Equal(t, "market_cap:desc", target.Display.DefaultSort)
	assert.Equal(t, "debug", target.Logging.Level)
	assert.Equal(t, "console", target.Logging.Format)
	assert.Equal(t, "/tmp/cb.log", target.Logging.File)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.New()
	path := writeConfig(t, `
plugins:
  aws: {}
display:
  error_mode: panel
`)

	require.NoError(t, config.ShallowMergeYAML(target, path))
	assert.Equal(t, config.ErrorModePanel, target.Display.ErrorMode)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.New()
	path := writeConfig(t, "# nothing here\n")

	require.NoError(t, config.ShallowMergeYAML(target, path))
	assert.Equal(t, config.New(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		assert.Error(t, config.ShallowMergeYAML(nil, "whatever.yaml"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "api: [unclosed\n")
		assert.Error(t, config.ShallowMergeYAML(config.New(), path))
	})

	t.Run("wrong type in section", func(t *testing.T) {
		path := writeConfig(t, "api:\n  per_page: lots\n")
		err := config.ShallowMergeYAML(config.New(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"api"`)
	})
}
