package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewLoader_ConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(ConfigFileEnv, "")

	assert.Equal(t, filepath.Join(home, ".duelist", "config.yaml"), NewLoader().ConfigFile())

	t.Setenv(ConfigFileEnv, "/etc/duelist.yaml")
	assert.Equal(t, "/etc/duelist.yaml", NewLoader().ConfigFile())
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(ConfigFileEnv, "")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 40, cfg.Display.Width)
}

func TestLoader_File(t *testing.T) {
	path := writeConfigFile(t, `
monitor:
  interval: 2s
notify:
  app_name: reminders
history:
  enabled: true
  dir: /tmp/duelist-history
display:
  width: 72
`)
	t.Setenv(ConfigFileEnv, path)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, cfg.Monitor.Interval)
	assert.Equal(t, "reminders", cfg.Notify.AppName)
	assert.True(t, cfg.Notify.Enabled, "keys absent from the file keep their defaults")
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/duelist-history", cfg.History.Dir)
	assert.Equal(t, "history.db", cfg.History.Filename)
	assert.Equal(t, 72, cfg.Display.Width)
}

func TestLoader_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "display:\n  width: 72\n")
	t.Setenv(ConfigFileEnv, path)
	t.Setenv("DL_DISPLAY_WIDTH", "50")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Display.Width)
}

func TestLoader_InvalidFile(t *testing.T) {
	path := writeConfigFile(t, "monitor: [unterminated\n")

	loader := NewLoader()
	loader.SetConfigFile(path)

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoader_FileFailsValidation(t *testing.T) {
	path := writeConfigFile(t, "display:\n  width: 3\n")

	loader := NewLoader()
	loader.SetConfigFile(path)

	_, err := loader.Load()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "display.width", cfgErr.Field)
}

func TestLoadWithOverrides(t *testing.T) {
	loader := NewLoader()
	loader.SetConfigFile("")

	interval := 500 * time.Millisecond
	enabled := false
	historyEnabled := true
	dir := t.TempDir()
	file := "alerts.db"
	retention := 48 * time.Hour
	format := time.Kitchen
	width := 30
	verbose := true

	cfg, err := loader.LoadWithOverrides(&ConfigOverrides{
		Interval:       &interval,
		NotifyEnabled:  &enabled,
		HistoryEnabled: &historyEnabled,
		HistoryDir:     &dir,
		HistoryFile:    &file,
		Retention:      &retention,
		TimeFormat:     &format,
		Width:          &width,
		Verbose:        &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, interval, cfg.Monitor.Interval)
	assert.False(t, cfg.Notify.Enabled)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "alerts.db"), cfg.GetHistoryPath())
	assert.Equal(t, retention, cfg.History.Retention)
	assert.Equal(t, time.Kitchen, cfg.Display.TimeFormat)
	assert.Equal(t, 30, cfg.Display.Width)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoadWithOverrides_Revalidates(t *testing.T) {
	loader := NewLoader()
	loader.SetConfigFile("")

	zero := time.Duration(0)
	_, err := loader.LoadWithOverrides(&ConfigOverrides{Interval: &zero})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "monitor.interval", cfgErr.Field)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDurationWithFallback("1m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("7", 1))
	assert.Equal(t, 1, ParseIntWithFallback("seven", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("yes please", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9", 8, 0755))
}
