package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store is the injectable history service.
//
// Every call does a whole-sequence read-modify-write against the persister.
// Persistence failures are logged and swallowed: the store then serves the
// in-memory copy of what it last wrote.
type Store struct {
	persister Persister
	opts      Options
	logger    zerolog.Logger

	mu        sync.Mutex
	mem       []Entry
	lastStamp int64
	observers map[int]Observer
	nextObs   int

	// notifyMu keeps broadcasts in mutation order without holding mu
	// while observers run.
	notifyMu sync.Mutex

	now func() time.Time
}

// NewStore creates a store over p. A nil persister keeps history in memory.
func NewStore(p Persister, opts Options, logger zerolog.Logger) *Store {
	if p == nil {
		p = NewMemory()
	}
	return &Store{
		persister: p,
		opts:      opts.withDefaults(),
		logger:    logger.With().Str("component", "history").Logger(),
		observers: make(map[int]Observer),
		now:       time.Now,
	}
}

// Capacity returns the configured bound.
func (s *Store) Capacity() int {
	return s.opts.Capacity
}

// Append assigns an id and timestamp, prepends the entry, truncates to
// capacity, persists, and notifies subscribers.
func (s *Store) Append(rec Record) {
	s.mu.Lock()

	current := s.load()
	entry := Entry{
		ID:        newID(),
		ToolID:    rec.ToolID,
		Timestamp: s.stamp(current),
		Input:     rec.Input,
		Output:    rec.Output,
		Action:    rec.Action,
	}

	updated := make([]Entry, 0, len(current)+1)
	updated = append(updated, entry)
	updated = append(updated, current...)
	if len(updated) > s.opts.Capacity {
		updated = updated[:s.opts.Capacity]
	}

	s.mem = updated
	if err := s.persister.Save(updated); err != nil {
		s.logger.Warn().Err(err).Str("tool", rec.ToolID).Msg("failed to save history")
	}

	s.broadcast(clone(updated))
}

// List returns the sequence most-recent first. It never fails.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.load())
}

// ListByTool returns the entries produced by toolID, most-recent first.
func (s *Store) ListByTool(toolID string) []Entry {
	all := s.List()
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if e.ToolID == toolID {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes the stored record and notifies subscribers with an empty
// sequence.
func (s *Store) Clear() {
	s.mu.Lock()

	s.mem = nil
	if err := s.persister.Remove(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear history")
	}

	s.broadcast([]Entry{})
}

// RecentToolIDs returns distinct tool ids in order of their most recent
// appearance. A limit < 1 uses the configured RecentLimit.
func (s *Store) RecentToolIDs(limit int) []string {
	if limit < 1 {
		limit = s.opts.RecentLimit
	}

	seen := make(map[string]bool)
	out := make([]string, 0, limit)
	for _, e := range s.List() {
		if len(out) >= limit {
			break
		}
		if seen[e.ToolID] {
			continue
		}
		seen[e.ToolID] = true
		out = append(out, e.ToolID)
	}
	return out
}

// Subscribe registers fn for every subsequent mutation and returns a
// function that removes it. Observers must not call Append or Clear.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// load reads the persisted sequence, falling back to the in-memory copy.
// Caller holds mu.
func (s *Store) load() []Entry {
	entries, err := s.persister.Load()
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to load history, using in-memory view")
		return s.mem
	}
	if len(entries) > s.opts.Capacity {
		entries = entries[:s.opts.Capacity]
	}
	s.mem = entries
	return entries
}

// broadcast releases mu and delivers entries to a snapshot of observers.
// Caller holds mu.
func (s *Store) broadcast(entries []Entry) {
	observers := make([]Observer, 0, len(s.observers))
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			observers = append(observers, fn)
		}
	}

	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	for _, fn := range observers {
		fn(clone(entries))
	}
}

// stamp returns a millisecond timestamp strictly greater than both the last
// one issued and the current head, so a clock that stepped back between
// runs cannot put the new entry behind persisted ones. Caller holds mu.
func (s *Store) stamp(current []Entry) int64 {
	if len(current) > 0 && current[0].Timestamp > s.lastStamp {
		s.lastStamp = current[0].Timestamp
	}
	ts := s.now().UnixMilli()
	if ts <= s.lastStamp {
		ts = s.lastStamp + 1
	}
	s.lastStamp = ts
	return ts
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
