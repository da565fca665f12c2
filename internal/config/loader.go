package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
)

// fileConfig mirrors Config with optional fields so that anything left
// out of the file keeps its default.
type fileConfig struct {
	History *struct {
		Capacity    *int     `json:"capacity"`
		RecentLimit *int     `json:"recentLimit"`
		Backend     *Backend `json:"backend"`
		Path        *string  `json:"path"`
	} `json:"history"`
	Search *struct {
		Limit     *int     `json:"limit"`
		Threshold *float64 `json:"threshold"`
	} `json:"search"`
}

func (f *fileConfig) applyTo(cfg *Config) {
	if h := f.History; h != nil {
		if h.Capacity != nil {
			cfg.History.Capacity = *h.Capacity
		}
		if h.RecentLimit != nil {
			cfg.History.RecentLimit = *h.RecentLimit
		}
		if h.Backend != nil && *h.Backend != "" {
			cfg.History.Backend = *h.Backend
		}
		if h.Path != nil {
			cfg.History.Path = *h.Path
		}
	}
	if s := f.Search; s != nil {
		if s.Limit != nil {
			cfg.Search.Limit = *s.Limit
		}
		if s.Threshold != nil {
			cfg.Search.Threshold = *s.Threshold
		}
	}
}

// LoadFrom reads the config at path on top of NewConfig defaults. Fields
// present in the file must be valid; absent fields keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("%w: %s (run 'dev-tools-hub config init')", ErrNotFound, path)
	case err != nil:
		return nil, &FileError{Path: path, Op: OpRead, Err: err}
	}

	var raw fileConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &raw); err != nil {
		return nil, &FileError{Path: path, Op: OpParse, Err: err}
	}

	cfg := NewConfig()
	raw.applyTo(cfg)

	if err := Validate(cfg); err != nil {
		return nil, &FileError{Path: path, Op: OpValidate, Err: err}
	}
	return cfg, nil
}
