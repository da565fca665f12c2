package history

import "sync"

// Memory is a Persister that keeps the record in process memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory returns an empty in-memory persister.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		return nil, nil
	}
	return clone(m.entries), nil
}

func (m *Memory) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = clone(entries)
	return nil
}

func (m *Memory) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
