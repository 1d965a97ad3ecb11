package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("SNOWBALL_DATA_FILE", "")
	t.Setenv("SNOWBALL_LOG_LEVEL", "")
	return dir
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	dir := useTempConfigHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
	assert.Equal(t, filepath.Join(dir, "snowball", "config.toml"), Path())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfigHome(t)

	cfg := DefaultConfig()
	cfg.General.CycleDays = 7
	cfg.General.DataFile = "/tmp/budget.db"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Log.Level = "debug"

	require.NoError(t, Save(cfg))
	assert.True(t, Exists())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	useTempConfigHome(t)
	require.NoError(t, os.MkdirAll(Dir(), 0o755))
	require.NoError(t, os.WriteFile(Path(), []byte("[appearance]\ntheme = \"terminal\"\n\n[general]\ncycle_days = 0\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Appearance.Theme)
	assert.Equal(t, 14, cfg.General.CycleDays)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMalformed(t *testing.T) {
	useTempConfigHome(t)
	require.NoError(t, os.MkdirAll(Dir(), 0o755))
	require.NoError(t, os.WriteFile(Path(), []byte("[general\n"), 0o600))

	_, err := Load()
	assert.ErrorContains(t, err, "parsing config")
}

func TestEnvOverrides(t *testing.T) {
	useTempConfigHome(t)
	cfg := DefaultConfig()
	cfg.General.DataFile = "/from/config.db"

	assert.Equal(t, "/from/config.db", DataFile(cfg))
	assert.Equal(t, "warn", LogLevel(cfg))

	t.Setenv("SNOWBALL_DATA_FILE", "/from/env.db")
	t.Setenv("SNOWBALL_LOG_LEVEL", "info")
	assert.Equal(t, "/from/env.db", DataFile(cfg))
	assert.Equal(t, "info", LogLevel(cfg))
}
