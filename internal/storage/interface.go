/*
Package storage implements persistence backends for the history record.

SQLiteStorage keeps the whole history sequence as one JSON row keyed by
history.StorageKey, plus hashed search analytics. FileStorage keeps the same
JSON document in a plain file. Both satisfy history.Persister.

The database is stored at ~/.dev-tools-hub/history.db and uses modernc.org/sqlite
(a pure Go, CGo-free implementation).
*/
package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/khanglvm/dev-tools-hub/internal/history"
)

// ErrDisabled is returned by record operations when the database could not
// be opened. The history store treats it like any other read/write failure.
var ErrDisabled = errors.New("storage disabled")

// Storage defines the persistence operations used by the CLI.
type Storage interface {
	history.Persister

	// Init initializes the database and runs migrations.
	Init() error

	// RecordSearch records a finder query for analytics.
	RecordSearch(search SearchRecord) error

	// Cleanup removes search records older than retention.
	Cleanup(retention time.Duration) error

	// Close closes the database connection.
	Close() error
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db       *sql.DB
	dbPath   string
	enabled  bool
	logger   zerolog.Logger
	mu       sync.Mutex
	initOnce sync.Once
}

// DefaultDBPath returns ~/.dev-tools-hub/history.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dev-tools-hub", "history.db"), nil
}

// NewStorage creates a SQLite storage instance at dbPath.
//
// An empty dbPath uses DefaultDBPath. If no path can be determined the
// storage is disabled, but operations will not panic.
func NewStorage(dbPath string, logger zerolog.Logger) *SQLiteStorage {
	logger = logger.With().Str("component", "storage").Logger()

	if dbPath == "" {
		p, err := DefaultDBPath()
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite storage disabled")
			return &SQLiteStorage{enabled: false, logger: logger}
		}
		dbPath = p
	}

	return &SQLiteStorage{
		dbPath:  dbPath,
		enabled: true,
		logger:  logger,
	}
}

// Init initializes the database and runs migrations.
//
// If initialization fails, storage is disabled and subsequent record
// operations return ErrDisabled (graceful degradation).
func (s *SQLiteStorage) Init() error {
	if !s.enabled {
		return nil
	}

	var initErr error
	s.initOnce.Do(func() {
		dbDir := filepath.Dir(s.dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			initErr = fmt.Errorf("failed to create db directory: %w", err)
			s.enabled = false
			s.logger.Warn().Err(initErr).Send()
			return
		}

		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			initErr = fmt.Errorf("failed to open database: %w", err)
			s.enabled = false
			s.logger.Warn().Err(initErr).Send()
			return
		}
		s.db = db

		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			s.enabled = false
			s.logger.Warn().Err(initErr).Send()
			return
		}

		if err := s.runMigrations(); err != nil {
			initErr = fmt.Errorf("failed to run migrations: %w", err)
			s.enabled = false
			s.logger.Warn().Err(initErr).Send()
			return
		}
	})

	return initErr
}

// Enabled reports whether the database is usable.
func (s *SQLiteStorage) Enabled() bool {
	return s.enabled && s.db != nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	if !s.enabled || s.db == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.db = nil
	return nil
}

// HashQuery creates a SHA256 hash of a query string for privacy.
func HashQuery(query string) string {
	hash := sha256.Sum256([]byte(query))
	return hex.EncodeToString(hash[:])
}
