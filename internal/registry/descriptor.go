package registry

import (
	"fmt"
	"sync"
)

// Component is the runnable implementation behind a descriptor.
type Component interface {
	// Actions lists the operations the component accepts; the first one is
	// the default.
	Actions() []string

	// Apply runs action over input and returns the transformed text.
	Apply(action, input string) (string, error)
}

// Loader builds a Component. It is called at most once per descriptor.
type Loader func() (Component, error)

// Descriptor is the static metadata for one tool.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Icon        Icon
	Keywords    []string

	load *lazyComponent
}

type lazyComponent struct {
	loader Loader
	once   sync.Once
	comp   Component
	err    error
}

// NewDescriptor returns a descriptor whose component is resolved on first
// use through loader.
func NewDescriptor(id, name, description string, category Category, icon Icon, keywords []string, loader Loader) Descriptor {
	kw := make([]string, len(keywords))
	copy(kw, keywords)
	return Descriptor{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		Icon:        icon,
		Keywords:    kw,
		load:        &lazyComponent{loader: loader},
	}
}

// Component resolves the tool implementation, loading it on first call.
func (d Descriptor) Component() (Component, error) {
	if d.load == nil || d.load.loader == nil {
		return nil, fmt.Errorf("tool %s: no component", d.ID)
	}
	d.load.once.Do(func() {
		d.load.comp, d.load.err = d.load.loader()
	})
	return d.load.comp, d.load.err
}

// Loaded reports whether the component has been resolved.
func (d Descriptor) Loaded() bool {
	return d.load != nil && d.load.comp != nil
}

func (d Descriptor) validate() error {
	switch {
	case d.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidDescriptor)
	case d.Name == "":
		return fmt.Errorf("%w: %s: empty name", ErrInvalidDescriptor, d.ID)
	case !d.Category.Valid():
		return fmt.Errorf("%w: %s: unknown category %q", ErrInvalidDescriptor, d.ID, d.Category)
	case !d.Icon.Valid():
		return fmt.Errorf("%w: %s: unknown icon %q", ErrInvalidDescriptor, d.ID, d.Icon)
	case d.load == nil || d.load.loader == nil:
		return fmt.Errorf("%w: %s: missing component loader", ErrInvalidDescriptor, d.ID)
	}
	return nil
}
