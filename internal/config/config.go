package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for duelist
type Config struct {
	Monitor     MonitorConfig     `mapstructure:"monitor"`
	Notify      NotifyConfig      `mapstructure:"notify"`
	History     HistoryConfig     `mapstructure:"history"`
	Display     DisplayConfig     `mapstructure:"display"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Application ApplicationConfig `mapstructure:"application"`
}

// MonitorConfig holds settings for the due-task scan
type MonitorConfig struct {
	Interval      time.Duration `mapstructure:"interval" env:"DL_MONITOR_INTERVAL"`
	NotifyTimeout time.Duration `mapstructure:"notify_timeout" env:"DL_MONITOR_NOTIFY_TIMEOUT"`
}

// NotifyConfig holds desktop notification settings
type NotifyConfig struct {
	Enabled bool   `mapstructure:"enabled" env:"DL_NOTIFY_ENABLED"`
	AppName string `mapstructure:"app_name" env:"DL_NOTIFY_APP_NAME"`
	AppIcon string `mapstructure:"app_icon" env:"DL_NOTIFY_APP_ICON"`
}

// HistoryConfig holds the event journal settings
type HistoryConfig struct {
	Enabled        bool          `mapstructure:"enabled" env:"DL_HISTORY_ENABLED"`
	Dir            string        `mapstructure:"dir" env:"DL_HISTORY_DIR"`
	Filename       string        `mapstructure:"filename" env:"DL_HISTORY_FILENAME"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" env:"DL_HISTORY_WRITE_TIMEOUT"`
	DirPermissions uint32        `mapstructure:"dir_permissions" env:"DL_HISTORY_DIR_PERMISSIONS"`
	// Retention drops older events at startup. Zero keeps everything.
	Retention time.Duration `mapstructure:"retention" env:"DL_HISTORY_RETENTION"`
}

// DisplayConfig holds console formatting configuration
type DisplayConfig struct {
	TimeFormat string `mapstructure:"time_format" env:"DL_DISPLAY_TIME_FORMAT"`
	Width      int    `mapstructure:"width" env:"DL_DISPLAY_WIDTH"`
}

// ValidationConfig holds task name rules
type ValidationConfig struct {
	TaskNameMaxLength int `mapstructure:"task_name_max_length" env:"DL_VALIDATION_TASK_NAME_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `mapstructure:"verbose" env:"DL_APP_VERBOSE"`
}

// DefaultDir returns ~/.duelist, or .duelist when the home directory is unknown.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".duelist"
	}
	return filepath.Join(homeDir, ".duelist")
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Interval:      time.Second,
			NotifyTimeout: 10 * time.Second,
		},
		Notify: NotifyConfig{
			Enabled: true,
			AppName: "duelist",
		},
		History: HistoryConfig{
			Enabled:        false,
			Dir:            DefaultDir(),
			Filename:       "history.db",
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			TimeFormat: "2006-01-02 03:04:05 PM MST-0700",
			Width:      40,
		},
		Validation: ValidationConfig{
			TaskNameMaxLength: 64,
		},
	}
}

// GetHistoryPath returns the full path to the journal database file
func (c *Config) GetHistoryPath() string {
	return filepath.Join(c.History.Dir, c.History.Filename)
}

// LoadFromEnvironment loads configuration from DL_* environment variables.
// Unparseable values are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Monitor configuration
	if v := os.Getenv("DL_MONITOR_INTERVAL"); v != "" {
		c.Monitor.Interval = ParseDurationWithFallback(v, c.Monitor.Interval)
	}
	if v := os.Getenv("DL_MONITOR_NOTIFY_TIMEOUT"); v != "" {
		c.Monitor.NotifyTimeout = ParseDurationWithFallback(v, c.Monitor.NotifyTimeout)
	}

	// Notify configuration
	if v := os.Getenv("DL_NOTIFY_ENABLED"); v != "" {
		c.Notify.Enabled = ParseBoolWithFallback(v, c.Notify.Enabled)
	}
	if v := os.Getenv("DL_NOTIFY_APP_NAME"); v != "" {
		c.Notify.AppName = v
	}
	if v := os.Getenv("DL_NOTIFY_APP_ICON"); v != "" {
		c.Notify.AppIcon = v
	}

	// History configuration
	if v := os.Getenv("DL_HISTORY_ENABLED"); v != "" {
		c.History.Enabled = ParseBoolWithFallback(v, c.History.Enabled)
	}
	if v := os.Getenv("DL_HISTORY_DIR"); v != "" {
		c.History.Dir = v
	}
	if v := os.Getenv("DL_HISTORY_FILENAME"); v != "" {
		c.History.Filename = v
	}
	if v := os.Getenv("DL_HISTORY_WRITE_TIMEOUT"); v != "" {
		c.History.WriteTimeout = ParseDurationWithFallback(v, c.History.WriteTimeout)
	}
	if v := os.Getenv("DL_HISTORY_DIR_PERMISSIONS"); v != "" {
		c.History.DirPermissions = ParseUint32WithFallback(v, 8, c.History.DirPermissions)
	}
	if v := os.Getenv("DL_HISTORY_RETENTION"); v != "" {
		c.History.Retention = ParseDurationWithFallback(v, c.History.Retention)
	}

	// Display configuration
	if v := os.Getenv("DL_DISPLAY_TIME_FORMAT"); v != "" {
		c.Display.TimeFormat = v
	}
	if v := os.Getenv("DL_DISPLAY_WIDTH"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			c.Display.Width = w
		}
	}

	// Validation configuration
	if v := os.Getenv("DL_VALIDATION_TASK_NAME_MAX"); v != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(v, c.Validation.TaskNameMaxLength)
	}

	// Application configuration
	if v := os.Getenv("DL_APP_VERBOSE"); v != "" {
		c.Application.Verbose = ParseBoolWithFallback(v, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns the first problem found
func (c *Config) Validate() error {
	if c.Monitor.Interval <= 0 {
		return &ConfigError{Field: "monitor.interval", Message: "scan interval must be positive"}
	}
	if c.Monitor.NotifyTimeout < 0 {
		return &ConfigError{Field: "monitor.notify_timeout", Message: "notify timeout cannot be negative"}
	}

	if c.Notify.Enabled && c.Notify.AppName == "" {
		return &ConfigError{Field: "notify.app_name", Message: "application name cannot be empty"}
	}

	if c.History.Enabled {
		if c.History.Dir == "" {
			return &ConfigError{Field: "history.dir", Message: "history directory cannot be empty"}
		}
		if c.History.Filename == "" {
			return &ConfigError{Field: "history.filename", Message: "history filename cannot be empty"}
		}
	}
	if c.History.WriteTimeout <= 0 {
		return &ConfigError{Field: "history.write_timeout", Message: "write timeout must be positive"}
	}
	if c.History.Retention < 0 {
		return &ConfigError{Field: "history.retention", Message: "retention cannot be negative"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Display.Width < 10 {
		return &ConfigError{Field: "display.width", Message: "width must be at least 10"}
	}

	if c.Validation.TaskNameMaxLength < 1 {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be at least 1"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
