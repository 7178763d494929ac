package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := NewConfig()

	assert.Equal(t, time.Second, cfg.Monitor.Interval)
	assert.Equal(t, 10*time.Second, cfg.Monitor.NotifyTimeout)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, "duelist", cfg.Notify.AppName)
	assert.Empty(t, cfg.Notify.AppIcon)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(home, ".duelist"), cfg.History.Dir)
	assert.Equal(t, filepath.Join(home, ".duelist", "history.db"), cfg.GetHistoryPath())
	assert.Equal(t, uint32(0755), cfg.History.DirPermissions)
	assert.Zero(t, cfg.History.Retention, "history is kept until pruned")
	assert.Equal(t, "2006-01-02 03:04:05 PM MST-0700", cfg.Display.TimeFormat)
	assert.Equal(t, 40, cfg.Display.Width)
	assert.False(t, cfg.Application.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DL_MONITOR_INTERVAL", "250ms")
	t.Setenv("DL_MONITOR_NOTIFY_TIMEOUT", "3s")
	t.Setenv("DL_NOTIFY_ENABLED", "false")
	t.Setenv("DL_NOTIFY_APP_NAME", "tasks")
	t.Setenv("DL_NOTIFY_APP_ICON", "/tmp/icon.png")
	t.Setenv("DL_HISTORY_ENABLED", "true")
	t.Setenv("DL_HISTORY_DIR", "/var/lib/duelist")
	t.Setenv("DL_HISTORY_FILENAME", "events.db")
	t.Setenv("DL_HISTORY_DIR_PERMISSIONS", "700")
	t.Setenv("DL_HISTORY_RETENTION", "720h")
	t.Setenv("DL_DISPLAY_TIME_FORMAT", time.RFC3339)
	t.Setenv("DL_DISPLAY_WIDTH", "60")
	t.Setenv("DL_VALIDATION_TASK_NAME_MAX", "12")
	t.Setenv("DL_APP_VERBOSE", "1")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.Interval)
	assert.Equal(t, 3*time.Second, cfg.Monitor.NotifyTimeout)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "tasks", cfg.Notify.AppName)
	assert.Equal(t, "/tmp/icon.png", cfg.Notify.AppIcon)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/var/lib/duelist/events.db", cfg.GetHistoryPath())
	assert.Equal(t, uint32(0700), cfg.History.DirPermissions)
	assert.Equal(t, 720*time.Hour, cfg.History.Retention)
	assert.Equal(t, time.RFC3339, cfg.Display.TimeFormat)
	assert.Equal(t, 60, cfg.Display.Width)
	assert.Equal(t, 12, cfg.Validation.TaskNameMaxLength)
	assert.True(t, cfg.Application.Verbose)
}

func TestLoadFromEnvironment_IgnoresBadValues(t *testing.T) {
	t.Setenv("DL_MONITOR_INTERVAL", "often")
	t.Setenv("DL_NOTIFY_ENABLED", "maybe")
	t.Setenv("DL_DISPLAY_WIDTH", "wide")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, time.Second, cfg.Monitor.Interval)
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, 40, cfg.Display.Width)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero interval", func(c *Config) { c.Monitor.Interval = 0 }, "monitor.interval"},
		{"negative notify timeout", func(c *Config) { c.Monitor.NotifyTimeout = -time.Second }, "monitor.notify_timeout"},
		{"empty app name", func(c *Config) { c.Notify.AppName = "" }, "notify.app_name"},
		{"empty history dir", func(c *Config) { c.History.Enabled = true; c.History.Dir = "" }, "history.dir"},
		{"empty history filename", func(c *Config) { c.History.Enabled = true; c.History.Filename = "" }, "history.filename"},
		{"zero write timeout", func(c *Config) { c.History.WriteTimeout = 0 }, "history.write_timeout"},
		{"negative retention", func(c *Config) { c.History.Retention = -time.Hour }, "history.retention"},
		{"empty time format", func(c *Config) { c.Display.TimeFormat = "" }, "display.time_format"},
		{"narrow width", func(c *Config) { c.Display.Width = 5 }, "display.width"},
		{"zero name length", func(c *Config) { c.Validation.TaskNameMaxLength = 0 }, "validation.task_name_max_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, err.Error(), tt.field+": ")
		})
	}
}

func TestValidate_HistoryPathIgnoredWhenDisabled(t *testing.T) {
	cfg := NewConfig()
	cfg.History.Dir = ""
	cfg.Notify.Enabled = false
	cfg.Notify.AppName = ""

	assert.NoError(t, cfg.Validate())
}
