/*
Package config handles loading and saving dev-tools-hub configuration.

Configuration is stored in ~/.dev-tools-hub.json. Comments and trailing
commas are allowed; the file is normalized before decoding.

Schema:
  {
    "history": {
      "capacity": 10,
      "recentLimit": 5,
      "backend": "sqlite",   // sqlite | file | memory
      "path": ""             // empty = backend default under ~/.dev-tools-hub
    },
    "search": {
      "limit": 8,
      "threshold": 0.4
    }
  }
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend names a history persistence backend.
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Config represents the root configuration structure.
type Config struct {
	History *HistoryConfig `json:"history"`
	Search  *SearchConfig  `json:"search"`
}

// HistoryConfig controls the history store and where it persists.
type HistoryConfig struct {
	// Capacity is the maximum number of retained entries.
	Capacity int `json:"capacity"`

	// RecentLimit is the default size of the recently-used tools list.
	RecentLimit int `json:"recentLimit"`

	Backend Backend `json:"backend"`

	// Path overrides the backend's default file location.
	Path string `json:"path,omitempty"`
}

// SearchConfig controls the tool finder.
type SearchConfig struct {
	// Limit is the maximum number of results shown.
	Limit int `json:"limit"`

	// Threshold is the minimum fused score in [0, 1].
	Threshold float64 `json:"threshold"`
}

// NewConfig creates a configuration populated with defaults.
func NewConfig() *Config {
	return &Config{
		History: &HistoryConfig{
			Capacity:    10,
			RecentLimit: 5,
			Backend:     BackendSQLite,
		},
		Search: &SearchConfig{
			Limit:     8,
			Threshold: 0.4,
		},
	}
}

// GetDefaultConfigPath returns the path to ~/.dev-tools-hub.json
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dev-tools-hub.json"), nil
}

// Load reads the configuration from the default path.
func Load() (*Config, error) {
	configPath, err := GetDefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadOrDefault reads path, falling back to defaults when the file does
// not exist. Any other failure is returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadFrom(path)
	if errors.Is(err, ErrNotFound) {
		return NewConfig(), nil
	}
	return cfg, err
}
