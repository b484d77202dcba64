// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TINT_CONFIG"

var v *viper.Viper

// DefaultPath returns $TINT_CONFIG, or ~/.tint/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tint", "config.yaml"), nil
}

// DataDir returns the directory holding the default database and backups.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tint"
	}
	return filepath.Join(home, ".tint")
}

// InitConfig initializes the configuration system
func InitConfig(configPath string) error {
	v = viper.New()

	// Set defaults
	setDefaults()

	// TINT_THEME_DEFAULT_RADIUS overrides theme.default_radius
	v.SetEnvPrefix("TINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set config file path
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Create config directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Try to read existing config
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, create it with defaults
		if os.IsNotExist(err) {
			if err := v.WriteConfigAs(configPath); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	dataDir := DataDir()

	// Server defaults
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.rate_limit", 120) // requests per minute per IP on /api
	v.SetDefault("server.blocked_ips", []string{})
	v.SetDefault("server.allowed_ips", []string{}) // empty allows everyone

	// Database defaults
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", filepath.Join(dataDir, "tint.db"))

	// Theme defaults
	v.SetDefault("theme.default_radius", 0.5)
	v.SetDefault("theme.start_dark", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Backup defaults
	v.SetDefault("backups.path", filepath.Join(dataDir, "backups"))
	v.SetDefault("backups.interval", "24h")
	v.SetDefault("backups.retention", 10)
	v.SetDefault("backups.enable_auto_backup", true)
}

// Get returns a raw config value
func Get(key string) interface{} {
	if v == nil {
		return nil
	}
	return v.Get(key)
}

// GetString returns a config value as string
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetInt returns a config value as int
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetFloat64 returns a config value as float64
func GetFloat64(key string) float64 {
	if v == nil {
		return 0
	}
	return v.GetFloat64(key)
}

// GetBool returns a config value as bool
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetStringSlice returns a config value as a string slice
func GetStringSlice(key string) []string {
	if v == nil {
		return nil
	}
	return v.GetStringSlice(key)
}

// GetDuration returns a config value as time.Duration
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// Set sets a config value and saves to file
func Set(key string, value interface{}) error {
	if v == nil {
		return fmt.Errorf("config not initialized")
	}

	v.Set(key, value)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetAll returns all config values as a map
func GetAll() map[string]interface{} {
	if v == nil {
		return nil
	}
	return v.AllSettings()
}

// Keys returns every known key, sorted.
func Keys() []string {
	if v == nil {
		return nil
	}
	keys := v.AllKeys()
	sort.Strings(keys)
	return keys
}
