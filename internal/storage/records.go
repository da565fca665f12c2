package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// Load returns the persisted history sequence, or nil when none is stored.
func (s *SQLiteStorage) Load() ([]history.Entry, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRow("SELECT value FROM kv_records WHERE key = ?", history.StorageKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	return decodeEntries([]byte(value))
}

// Save replaces the persisted history sequence.
func (s *SQLiteStorage) Save(entries []history.Entry) error {
	if !s.Enabled() {
		return ErrDisabled
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT OR REPLACE INTO kv_records (key, value, updated_at)
		VALUES (?, ?, ?)
	`
	if _, err := s.db.Exec(query, history.StorageKey, string(data), time.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Remove deletes the history record.
func (s *SQLiteStorage) Remove() error {
	if !s.Enabled() {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM kv_records WHERE key = ?", history.StorageKey); err != nil {
		return fmt.Errorf("failed to remove history: %w", err)
	}
	return nil
}

func decodeEntries(data []byte) ([]history.Entry, error) {
	var entries []history.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("corrupt history record: %w", err)
	}
	return entries, nil
}
