package config

import "fmt"

// Validate checks value ranges. Sections must already be present.
func Validate(cfg *Config) error {
	if cfg.History == nil {
		return fmt.Errorf("missing 'history' section")
	}
	if cfg.Search == nil {
		return fmt.Errorf("missing 'search' section")
	}

	h := cfg.History
	if h.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1, got %d", h.Capacity)
	}
	if h.RecentLimit < 1 {
		return fmt.Errorf("history.recentLimit must be at least 1, got %d", h.RecentLimit)
	}
	switch h.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("history.backend %q is not one of sqlite, file, memory", h.Backend)
	}

	s := cfg.Search
	if s.Limit < 1 {
		return fmt.Errorf("search.limit must be at least 1, got %d", s.Limit)
	}
	if s.Threshold < 0 || s.Threshold > 1 {
		return fmt.Errorf("search.threshold must be within [0, 1], got %g", s.Threshold)
	}

	return nil
}
