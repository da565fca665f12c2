package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/config"
	"github.com/khanglvm/dev-tools-hub/internal/history"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
	"github.com/khanglvm/dev-tools-hub/internal/search"
	"github.com/khanglvm/dev-tools-hub/internal/storage"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

// App holds the components shared by all commands.
type App struct {
	configPath string
	debug      bool
	logFile    string
	logCloser  io.Closer

	Logger   zerolog.Logger
	Config   *config.Config
	Registry *registry.Registry
	Store    *history.Store
	Runner   *tools.Runner

	// SQLite is set only for the sqlite backend; it also records search
	// analytics.
	SQLite *storage.SQLiteStorage

	indexer  *search.Indexer
	logReady bool
	ready    bool
}

// initLogger configures zerolog. Logs are discarded unless a file is given
// so command output stays clean.
func initLogger(debug bool, logFilePath string) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var output io.Writer = io.Discard
	var closer io.Closer
	if logFilePath != "" {
		file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		closer = file
	} else if debug {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger(), closer, nil
}

// initLogging sets up the logger and resolves the config path. Commands
// that must not touch the history backend stop here.
func (a *App) initLogging() error {
	if a.logReady {
		return nil
	}

	logger, closer, err := initLogger(a.debug, a.logFile)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.logCloser = closer
	a.logReady = true

	if a.configPath == "" {
		if a.configPath, err = config.GetDefaultConfigPath(); err != nil {
			return err
		}
	}
	return nil
}

// init loads configuration and opens the history backend.
func (a *App) init() error {
	if a.ready {
		return nil
	}

	if err := a.initLogging(); err != nil {
		return err
	}

	var err error
	if a.Config, err = config.LoadOrDefault(a.configPath); err != nil {
		return err
	}

	persister, err := a.openPersister()
	if err != nil {
		return err
	}

	a.Registry = tools.Catalog()
	a.Store = history.NewStore(persister, history.Options{
		Capacity:    a.Config.History.Capacity,
		RecentLimit: a.Config.History.RecentLimit,
	}, a.Logger)
	a.Runner = tools.NewRunner(a.Registry, a.Store)
	a.ready = true

	a.Logger.Debug().
		Str("config", a.configPath).
		Str("backend", string(a.Config.History.Backend)).
		Int("capacity", a.Config.History.Capacity).
		Msg("app initialized")
	return nil
}

// openPersister selects the history backend from configuration. SQLite
// initialization failures are logged and the store runs in memory.
func (a *App) openPersister() (history.Persister, error) {
	h := a.Config.History
	switch h.Backend {
	case config.BackendMemory:
		return history.NewMemory(), nil

	case config.BackendFile:
		path := h.Path
		if path == "" {
			p, err := storage.DefaultFilePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return storage.NewFileStorage(path), nil

	default:
		a.SQLite = storage.NewStorage(h.Path, a.Logger)
		if err := a.SQLite.Init(); err != nil {
			a.Logger.Warn().Err(err).Msg("history will not persist")
		}
		return a.SQLite, nil
	}
}

// Indexer builds the search index on first use.
func (a *App) Indexer() (*search.Indexer, error) {
	if a.indexer != nil {
		return a.indexer, nil
	}

	opts := search.DefaultOptions
	opts.Threshold = a.Config.Search.Threshold

	idx, err := search.NewIndexer(a.Registry, opts, a.Logger)
	if err != nil {
		return nil, err
	}
	a.indexer = idx
	return idx, nil
}

// analytics returns the search recorder, or nil when searches are not
// recorded.
func (a *App) analytics() *storage.SQLiteStorage {
	if a.SQLite == nil || !a.SQLite.Enabled() {
		return nil
	}
	return a.SQLite
}

// Close releases the index, database and log file.
func (a *App) Close() error {
	if a.indexer != nil {
		if err := a.indexer.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close search index")
		}
		a.indexer = nil
	}
	if a.SQLite != nil {
		if err := a.SQLite.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close database")
		}
	}
	if a.logCloser != nil {
		a.logCloser.Close()
		a.logCloser = nil
	}
	a.ready = false
	a.logReady = false
	return nil
}
