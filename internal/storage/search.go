package storage

import (
	"time"
)

// RecordSearch records a finder query for analytics. Failures are logged.
func (s *SQLiteStorage) RecordSearch(search SearchRecord) error {
	if !s.Enabled() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO search_history (search_id, query_hash, timestamp, results_count)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		search.SearchID,
		search.QueryHash,
		search.Timestamp.Format(time.RFC3339),
		search.ResultsCount,
	)

	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to record search")
	}

	return nil
}

// CountSearches returns the number of recorded searches.
func (s *SQLiteStorage) CountSearches() (int, error) {
	if !s.Enabled() {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM search_history").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Cleanup removes search records older than retention.
func (s *SQLiteStorage) Cleanup(retention time.Duration) error {
	if !s.Enabled() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-retention).Format(time.RFC3339)

	if _, err := s.db.Exec("DELETE FROM search_history WHERE timestamp < ?", cutoff); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cleanup search_history")
	}

	if _, err := s.db.Exec("VACUUM"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to vacuum database")
	}

	return nil
}
