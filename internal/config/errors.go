package config

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by LoadFrom when no file exists at the path.
var ErrNotFound = errors.New("config file not found")

// Stages at which a config file can fail.
const (
	OpRead     = "read"
	OpParse    = "parse"
	OpValidate = "validate"
	OpWrite    = "write"
)

// FileError reports a config file that exists but could not be used.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("config %s %s: %v\nhint: %s", e.Op, e.Path, e.Err, e.Hint())
}

func (e *FileError) Unwrap() error { return e.Err }

// Hint suggests how to recover from the failure.
func (e *FileError) Hint() string {
	switch e.Op {
	case OpRead:
		return "make the file readable, e.g. chmod 644 " + e.Path
	case OpParse:
		return "restore " + e.Path + ".bak or run 'dev-tools-hub config init --force'"
	case OpValidate:
		return "history.capacity, history.recentLimit and search.limit must be at least 1, " +
			"history.backend one of sqlite|file|memory, search.threshold within [0, 1]; " +
			"omit a field to use its default"
	case OpWrite:
		return "check that the directory of " + e.Path + " is writable"
	}
	return "run 'dev-tools-hub config init --force' to start over"
}
