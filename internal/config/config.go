// Package config handles global plantkit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global plantkit configuration.
type Config struct {
	// DefaultDataset is the name of the default dataset (from Datasets map).
	DefaultDataset string `toml:"default_dataset"`

	// Datasets maps dataset names to root directories.
	Datasets map[string]string `toml:"datasets"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255"), hex
	// colors ("#RRGGBB"), or "none" to disable styling.
	Accent string `toml:"accent"`
}

// GetDatasetPath returns the root directory for a named dataset. An empty
// name resolves the default dataset.
func (c *Config) GetDatasetPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultDataset
	}
	if name == "" {
		return "", fmt.Errorf("no default dataset configured")
	}
	if c.Datasets != nil {
		if path, ok := c.Datasets[name]; ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("dataset '%s' not found in config", name)
}

// GetDefaultDatasetPath returns the default dataset root.
func (c *Config) GetDefaultDatasetPath() (string, error) {
	return c.GetDatasetPath("")
}

// Load loads the configuration from the default location. Returns a default
// config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path. Checks
// ~/.config/plantkit/config.toml first (XDG style), then falls back to the
// OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "plantkit", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "plantkit", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
