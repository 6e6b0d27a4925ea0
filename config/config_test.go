package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, "Local", cfg.Location)
	assert.False(t, cfg.Console)
	assert.Empty(t, cfg.SettingsPath)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PPS_PORT", "9090")
	t.Setenv("PPS_TICK_INTERVAL", "250ms")
	t.Setenv("PPS_CONSOLE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.Console)
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv does not override variables that are already set
	t.Setenv("PPS_LOG_LEVEL", "warn")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PPS_SETTINGS_PATH=/tmp/pay.json\nPPS_LOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PPS_SETTINGS_PATH") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/pay.json", cfg.SettingsPath)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_RejectsNonPositiveTick(t *testing.T) {
	t.Setenv("PPS_TICK_INTERVAL", "0s")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestLoadLocation(t *testing.T) {
	loc, err := Config{Location: "Local"}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = Config{Location: "UTC"}.LoadLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = Config{Location: "Mars/Olympus_Mons"}.LoadLocation()
	assert.Error(t, err)
}
