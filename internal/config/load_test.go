package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadAppliesDefaultsWithNoFileOrEnv(t *testing.T) {
	resetViper(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.ToriiURLs)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoadOverridesFromYAMLFile(t *testing.T) {
	resetViper(t)

	dir := t.TempDir()
	yaml := "toriiUrls:\n  - http://peer1:8080\n  - http://peer2:8080\nlogLevel: DEBUG\nhttp:\n  address: \":9090\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://peer1:8080", "http://peer2:8080"}, cfg.ToriiURLs)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.HTTP.Address)
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	resetViper(t)

	t.Setenv("IROHA_EXPLORER_LOGLEVEL", "WARN")
	t.Setenv("IROHA_EXPLORER_HTTP_ADDRESS", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.LogLevel)
	assert.Equal(t, ":7070", cfg.HTTP.Address)
}

func TestLoadRejectsMissingConfigDir(t *testing.T) {
	resetViper(t)

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrConfigPath)
}
