/*
Package history implements the recent-activity log shared by every tool.

The log is an append-only, capacity-bounded sequence ordered most-recent
first. It is persisted as one record under StorageKey through a Persister
and broadcast to subscribers after every mutation.
*/
package history

import "time"

const (
	// StorageKey is the fixed key the whole sequence is persisted under.
	StorageKey = "dev-tools-history"

	// DefaultCapacity is the number of entries kept across all tools.
	DefaultCapacity = 10

	// DefaultRecentLimit is the default cap for RecentToolIDs.
	DefaultRecentLimit = 5
)

// Entry is one recorded tool interaction.
type Entry struct {
	// ID is unique per entry (UUIDv7: millisecond time prefix + random bits).
	ID string `json:"id" yaml:"id"`

	// ToolID references a registry descriptor. Dangling ids are tolerated.
	ToolID string `json:"toolId" yaml:"toolId"`

	// Timestamp is the creation time in Unix milliseconds. It strictly
	// increases with insertion order within a store.
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`

	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`

	// Action is an optional label such as "Encode" or "Bit Toggle".
	Action string `json:"action,omitempty" yaml:"action,omitempty"`
}

// Time returns Timestamp as a time.Time.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Record is what a tool submits; the store assigns ID and Timestamp.
type Record struct {
	ToolID string
	Input  string
	Output string
	Action string
}

// Recorder is the write side of the store handed to tools.
type Recorder interface {
	Append(rec Record)
}

// Observer receives the full sequence after every mutation.
type Observer func(entries []Entry)

// Persister stores the whole sequence as a single record.
type Persister interface {
	// Load returns the stored sequence, or nil when nothing is stored.
	Load() ([]Entry, error)

	// Save replaces the stored sequence.
	Save(entries []Entry) error

	// Remove deletes the record entirely.
	Remove() error
}

// Options configures a Store.
type Options struct {
	// Capacity bounds the sequence. Values < 1 use DefaultCapacity.
	Capacity int

	// RecentLimit is the default limit for RecentToolIDs.
	RecentLimit int
}

func (o Options) withDefaults() Options {
	if o.Capacity < 1 {
		o.Capacity = DefaultCapacity
	}
	if o.RecentLimit < 1 {
		o.RecentLimit = DefaultRecentLimit
	}
	return o
}
