/*
Package tools implements the individual utilities and the default catalog.

Each tool is a registry.Component: a set of named actions that transform
input text. The Runner resolves a tool through the registry, applies the
action and appends a history entry when the transform succeeds. Failed
transforms leave history untouched.
*/
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khanglvm/dev-tools-hub/internal/history"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
)

var (
	// ErrUnknownAction is returned when a tool does not support an action.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidInput wraps transform failures caused by malformed input.
	ErrInvalidInput = errors.New("invalid input")
)

// recordable lets a component shape or suppress its history entry.
type recordable interface {
	historyRecord(action, input, output string) (history.Record, bool)
}

// Runner applies tool actions and records them.
type Runner struct {
	registry *registry.Registry
	recorder history.Recorder
}

// NewRunner creates a runner over reg. A nil recorder disables history.
func NewRunner(reg *registry.Registry, recorder history.Recorder) *Runner {
	return &Runner{registry: reg, recorder: recorder}
}

// Registry returns the catalog the runner resolves tools from.
func (r *Runner) Registry() *registry.Registry {
	return r.registry
}

// Run applies action of toolID to input. An empty action selects the
// tool's default action.
func (r *Runner) Run(toolID, action, input string) (string, error) {
	desc, err := r.registry.GetByID(toolID)
	if err != nil {
		return "", err
	}

	comp, err := desc.Component()
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", toolID, err)
	}

	action = strings.ToLower(strings.TrimSpace(action))
	if action == "" {
		action = comp.Actions()[0]
	}
	if !supports(comp, action) {
		return "", fmt.Errorf("%s: %q (want one of %s): %w",
			toolID, action, strings.Join(comp.Actions(), ", "), ErrUnknownAction)
	}

	output, err := comp.Apply(action, input)
	if err != nil {
		return "", err
	}

	if r.recorder != nil {
		rec := history.Record{Input: input, Output: output, Action: action}
		keep := true
		if rc, ok := comp.(recordable); ok {
			rec, keep = rc.historyRecord(action, input, output)
		}
		if keep {
			rec.ToolID = toolID
			r.recorder.Append(rec)
		}
	}

	return output, nil
}

func supports(c registry.Component, action string) bool {
	for _, a := range c.Actions() {
		if a == action {
			return true
		}
	}
	return false
}

func invalid(format string, err error) error {
	return fmt.Errorf("%w: "+format+": %v", ErrInvalidInput, err)
}
