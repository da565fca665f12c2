package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestSaveKeepsPreviousFileAsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.History.Capacity = 25
	if err := Save(cfg, path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("first save should not leave a backup")
	}

	cfg.History.Capacity = 40
	if err := Save(cfg, path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	bak, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if !strings.Contains(string(bak), `"capacity": 25`) {
		t.Errorf("backup should hold the previous capacity, got:\n%s", bak)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.History.Capacity != 40 {
		t.Errorf("expected capacity 40, got %d", loaded.History.Capacity)
	}
}

func TestSaveCreatesDirectoryAndLeavesNoTempFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "config.json")

	if err := Save(NewConfig(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only config.json, got %v", names)
	}
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.History.Backend = "redis"

	err := Save(cfg, path)
	var fileErr *FileError
	if !errors.As(err, &fileErr) || fileErr.Op != OpValidate {
		t.Fatalf("expected validate FileError, got %v", err)
	}
	if !strings.Contains(err.Error(), "history.backend") {
		t.Errorf("error should name the field, got: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should not exist after failed validation")
	}
}

func TestSaveConcurrentWritersLeaveLoadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(capacity int) {
			defer wg.Done()
			cfg := NewConfig()
			cfg.History.Capacity = capacity
			if err := Save(cfg, path); err != nil {
				t.Logf("concurrent save error: %v", err)
			}
		}(i + 1)
	}
	wg.Wait()

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("config unreadable after concurrent writes: %v", err)
	}
	if cfg.History.Capacity < 1 || cfg.History.Capacity > 10 {
		t.Errorf("unexpected capacity %d", cfg.History.Capacity)
	}
}
