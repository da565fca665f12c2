/*
Package storage provides tests for the storage layer.
*/
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s := NewStorage(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestInit verifies database initialization and schema creation.
func TestInit(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	storage := NewStorage(dbPath, zerolog.Nop())

	if err := storage.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer storage.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file not created")
	}
	if !storage.Enabled() {
		t.Error("Expected storage to be enabled")
	}
}

// TestLoadEmpty verifies a fresh database reports no record.
func TestLoadEmpty(t *testing.T) {
	s := newTestStorage(t)

	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if entries != nil {
		t.Errorf("Expected nil entries, got %v", entries)
	}
}

// TestSaveLoadRemove verifies the single history record lifecycle.
func TestSaveLoadRemove(t *testing.T) {
	s := newTestStorage(t)

	want := []history.Entry{
		{ID: "2", ToolID: "base64", Timestamp: 2, Input: "hi", Output: "aGk=", Action: "Encode"},
		{ID: "1", ToolID: "decimal-binary", Timestamp: 1, Input: "42", Output: "101010"},
	}

	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// Saving again replaces the record rather than adding a row.
	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Round trip mismatch: got %+v", got)
	}

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	got, err = s.Load()
	if err != nil || got != nil {
		t.Errorf("Expected no record after Remove, got %v (err %v)", got, err)
	}
}

// TestCorruptRecord verifies an unreadable record surfaces as an error.
func TestCorruptRecord(t *testing.T) {
	s := newTestStorage(t)

	if _, err := s.db.Exec(
		"INSERT INTO kv_records (key, value, updated_at) VALUES (?, ?, ?)",
		history.StorageKey, "{not json", time.Now().Format(time.RFC3339),
	); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("Expected error for corrupt record")
	}

	store := history.NewStore(s, history.Options{}, zerolog.Nop())
	if got := store.List(); len(got) != 0 {
		t.Errorf("Expected empty list for corrupt storage, got %d", len(got))
	}
}

// TestRecordSearch verifies search analytics and retention cleanup.
func TestRecordSearch(t *testing.T) {
	s := newTestStorage(t)

	records := []SearchRecord{
		{SearchID: "old", QueryHash: HashQuery("json"), Timestamp: time.Now().Add(-48 * time.Hour), ResultsCount: 1},
		{SearchID: "new", QueryHash: HashQuery("b64"), Timestamp: time.Now(), ResultsCount: 2},
	}
	for _, r := range records {
		if err := s.RecordSearch(r); err != nil {
			t.Fatalf("RecordSearch failed: %v", err)
		}
	}

	n, err := s.CountSearches()
	if err != nil || n != 2 {
		t.Fatalf("Expected 2 searches, got %d (err %v)", n, err)
	}

	if err := s.Cleanup(24 * time.Hour); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	n, _ = s.CountSearches()
	if n != 1 {
		t.Errorf("Expected 1 search after cleanup, got %d", n)
	}
}

// TestHashQuery verifies query hashing consistency.
func TestHashQuery(t *testing.T) {
	query := "test query for hashing"

	hash1 := HashQuery(query)
	hash2 := HashQuery(query)

	if hash1 != hash2 {
		t.Error("HashQuery produced inconsistent results")
	}

	if len(hash1) != 64 { // SHA256 hex = 64 chars
		t.Errorf("Expected hash length 64, got %d", len(hash1))
	}
}

// TestGracefulDegradation verifies behavior when DB is unavailable.
func TestGracefulDegradation(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	// The parent "directory" is a regular file, so MkdirAll fails.
	storage := NewStorage(filepath.Join(blocker, "sub", "test.db"), zerolog.Nop())

	if err := storage.Init(); err == nil {
		t.Fatal("Expected Init to fail")
	}

	if _, err := storage.Load(); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled from Load, got %v", err)
	}
	if err := storage.Save(nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled from Save, got %v", err)
	}
	if err := storage.RecordSearch(SearchRecord{SearchID: "x"}); err != nil {
		t.Errorf("RecordSearch should return nil on disabled storage, got: %v", err)
	}

	store := history.NewStore(storage, history.Options{}, zerolog.Nop())
	store.Append(history.Record{ToolID: "base64"})
	if got := store.List(); len(got) != 1 {
		t.Errorf("Expected in-memory fallback with 1 entry, got %d", len(got))
	}
}
