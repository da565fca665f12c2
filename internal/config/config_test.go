package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	if cfg.History == nil || cfg.Search == nil {
		t.Fatal("NewConfig() sections should not be nil")
	}

	if cfg.History.Capacity != 10 {
		t.Errorf("Default Capacity should be 10, got %d", cfg.History.Capacity)
	}

	if cfg.History.RecentLimit != 5 {
		t.Errorf("Default RecentLimit should be 5, got %d", cfg.History.RecentLimit)
	}

	if cfg.History.Backend != BackendSQLite {
		t.Errorf("Default Backend should be sqlite, got %s", cfg.History.Backend)
	}

	if cfg.Search.Limit != 8 {
		t.Errorf("Default search Limit should be 8, got %d", cfg.Search.Limit)
	}

	if cfg.Search.Threshold != 0.4 {
		t.Errorf("Default Threshold should be 0.4, got %f", cfg.Search.Threshold)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".dev-tools-hub.json")

	cfg := NewConfig()
	cfg.History.Capacity = 20
	cfg.History.Backend = BackendFile
	cfg.History.Path = filepath.Join(tmpDir, "history.json")
	cfg.Search.Threshold = 0.25

	if err := Save(cfg, configPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.History.Capacity != 20 {
		t.Errorf("Expected capacity 20, got %d", loaded.History.Capacity)
	}
	if loaded.History.Backend != BackendFile {
		t.Errorf("Expected backend file, got %s", loaded.History.Backend)
	}
	if loaded.History.Path != cfg.History.Path {
		t.Errorf("Expected path %s, got %s", cfg.History.Path, loaded.History.Path)
	}
	if loaded.Search.Threshold != 0.25 {
		t.Errorf("Expected threshold 0.25, got %f", loaded.Search.Threshold)
	}
}

func TestLoadNonExistent(t *testing.T) {
	_, err := LoadFrom("/nonexistent/path/config.json")
	if err == nil {
		t.Error("LoadFrom should fail for non-existent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(tmpDir, "missing.json"))
	if err != nil {
		t.Fatalf("LoadOrDefault should not fail for missing file: %v", err)
	}
	if cfg.History.Capacity != 10 {
		t.Errorf("expected defaults, got capacity %d", cfg.History.Capacity)
	}

	bad := filepath.Join(tmpDir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{invalid`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := LoadOrDefault(bad); err == nil {
		t.Error("LoadOrDefault should surface parse errors")
	}
}
