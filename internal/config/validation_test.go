package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.History.Backend = BackendMemory }},
		{name: "threshold zero", mutate: func(c *Config) { c.Search.Threshold = 0 }},
		{name: "threshold one", mutate: func(c *Config) { c.Search.Threshold = 1 }},
		{
			name:   "zero capacity",
			mutate: func(c *Config) { c.History.Capacity = 0 },
			errMsg: "history.capacity",
		},
		{
			name:   "negative recent limit",
			mutate: func(c *Config) { c.History.RecentLimit = -1 },
			errMsg: "history.recentLimit",
		},
		{
			name:   "unknown backend",
			mutate: func(c *Config) { c.History.Backend = "redis" },
			errMsg: "history.backend",
		},
		{
			name:   "zero search limit",
			mutate: func(c *Config) { c.Search.Limit = 0 },
			errMsg: "search.limit",
		},
		{
			name:   "threshold above one",
			mutate: func(c *Config) { c.Search.Threshold = 1.5 },
			errMsg: "search.threshold",
		},
		{
			name:   "negative threshold",
			mutate: func(c *Config) { c.Search.Threshold = -0.1 },
			errMsg: "search.threshold",
		},
		{
			name:   "missing search",
			mutate: func(c *Config) { c.Search = nil },
			errMsg: "missing 'search' section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error should contain %q, got %q", tt.errMsg, err.Error())
			}
		})
	}
}
