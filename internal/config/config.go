// Package config loads user-configurable settings from config.json.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all user-configurable settings.
type Config struct {
	// Root is the mounted volume directory the navigator is confined to.
	Root string `json:"root"`

	// MaxItems caps fully-loaded-and-sorted directories; larger ones page
	// unsorted. 0 = unlimited.
	MaxItems int `json:"maxItems"`

	// WindowSize is the page size for oversized directories.
	WindowSize int `json:"windowSize"`

	DefaultSort   string `json:"defaultSort"` // "name" | "date" | "size"
	SortAscending bool   `json:"sortAscending"`

	// RestoreLastPath re-opens the last visited directory on startup.
	RestoreLastPath bool `json:"restoreLastPath"`

	// WatchDebounceMs debounces directory change notifications.
	WatchDebounceMs int `json:"watchDebounceMs"`

	// StorePath is the preferences database location. Empty means
	// a default under the user config directory.
	StorePath string `json:"storePath"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Root:            "/",
		MaxItems:        4096,
		WindowSize:      64,
		DefaultSort:     "name",
		SortAscending:   true,
		RestoreLastPath: true,
		WatchDebounceMs: 200,
		StorePath:       "",
	}
}

// Load reads the config file at path, applying defaults for absent fields.
// A missing file is not an error: defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxItems < 0 {
		return fmt.Errorf("maxItems must be >= 0, got %d", c.MaxItems)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("windowSize must be > 0, got %d", c.WindowSize)
	}
	switch c.DefaultSort {
	case "name", "date", "size":
	default:
		return fmt.Errorf("defaultSort must be name, date, or size, got %q", c.DefaultSort)
	}
	if c.WatchDebounceMs < 0 {
		return fmt.Errorf("watchDebounceMs must be >= 0, got %d", c.WatchDebounceMs)
	}
	return nil
}

// Save writes the config as indented JSON, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "sdnav", "config.json")
}

// DefaultStorePath returns the per-user preferences database location.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sdnav.db"
	}
	return filepath.Join(dir, "sdnav", "sdnav.db")
}
