// Package config handles global zma configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global zma configuration.
type Config struct {
	// DefaultLibrary is the name of the default library (from Libraries).
	DefaultLibrary string `toml:"default_library"`

	// Libraries is a map of library names to their connection settings.
	Libraries map[string]Library `toml:"libraries"`

	// Defaults holds options applied when no flag overrides them.
	Defaults Defaults `toml:"defaults"`
}

// Library identifies one Zotero library.
type Library struct {
	// ID is the numeric library identifier.
	ID string `toml:"id"`

	// Type is "user" or "group".
	Type string `toml:"type"`

	// APIKey authorizes write operations. Optional for read-only use;
	// the ZOTERO_API_KEY environment variable takes precedence when set.
	APIKey string `toml:"api_key"`
}

// Defaults holds option defaults applied across commands.
type Defaults struct {
	// TagFilters are global tag filters applied to every query, each
	// optionally negated with a leading "-".
	TagFilters []string `toml:"tag_filters"`

	// Style is the citation style for bibliography rendering.
	Style string `toml:"style"`
}

// GetLibrary returns the settings for a named library.
// If name is empty, returns the default library.
func (c *Config) GetLibrary(name string) (Library, error) {
	if name == "" {
		name = c.DefaultLibrary
	}
	if name == "" {
		return Library{}, fmt.Errorf("no default library configured")
	}
	if lib, ok := c.Libraries[name]; ok {
		return lib, nil
	}
	return Library{}, fmt.Errorf("library '%s' not found in config", name)
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
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

// DefaultPath returns the default config file path.
// Checks ~/.config/zma/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "zma", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "zma", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}
