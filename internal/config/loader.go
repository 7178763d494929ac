package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable that selects the config file.
const ConfigFileEnv = "DL_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	path   string
}

// NewLoader creates a new configuration loader. The config file is taken
// from DL_CONFIG, falling back to ~/.duelist/config.yaml.
func NewLoader() *Loader {
	path := os.Getenv(ConfigFileEnv)
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Loader{
		config: NewConfig(),
		path:   path,
	}
}

// DefaultConfigPath returns ~/.duelist/config.yaml
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// SetConfigFile replaces the config file path. An empty path disables the file layer.
func (l *Loader) SetConfigFile(path string) {
	l.path = path
}

// ConfigFile returns the config file path the loader reads.
func (l *Loader) ConfigFile() string {
	return l.path
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if present
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile merges the YAML file over the current values. A missing file is not an error.
func (l *Loader) loadFile() error {
	if l.path == "" {
		return nil
	}
	if _, err := os.Stat(l.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(l.path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", l.path, err)
	}
	if err := v.Unmarshal(l.config); err != nil {
		return fmt.Errorf("decode config file %s: %w", l.path, err)
	}
	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Monitor overrides
	Interval      *time.Duration
	NotifyTimeout *time.Duration

	// Notify overrides
	NotifyEnabled *bool
	AppName       *string
	AppIcon       *string

	// History overrides
	HistoryEnabled *bool
	HistoryDir     *string
	HistoryFile    *string
	Retention      *time.Duration

	// Display overrides
	TimeFormat *string
	Width      *int

	// Application overrides
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Interval != nil {
		config.Monitor.Interval = *overrides.Interval
	}
	if overrides.NotifyTimeout != nil {
		config.Monitor.NotifyTimeout = *overrides.NotifyTimeout
	}

	if overrides.NotifyEnabled != nil {
		config.Notify.Enabled = *overrides.NotifyEnabled
	}
	if overrides.AppName != nil {
		config.Notify.AppName = *overrides.AppName
	}
	if overrides.AppIcon != nil {
		config.Notify.AppIcon = *overrides.AppIcon
	}

	if overrides.HistoryEnabled != nil {
		config.History.Enabled = *overrides.HistoryEnabled
	}
	if overrides.HistoryDir != nil {
		config.History.Dir = *overrides.HistoryDir
	}
	if overrides.HistoryFile != nil {
		config.History.Filename = *overrides.HistoryFile
	}
	if overrides.Retention != nil {
		config.History.Retention = *overrides.Retention
	}

	if overrides.TimeFormat != nil {
		config.Display.TimeFormat = *overrides.TimeFormat
	}
	if overrides.Width != nil {
		config.Display.Width = *overrides.Width
	}

	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
