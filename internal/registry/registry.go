package registry

import "fmt"

// Registry is the immutable catalog of tools.
type Registry struct {
	tools []Descriptor
	byID  map[string]int
}

// New validates descriptors and builds a registry preserving their order.
func New(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		tools: make([]Descriptor, 0, len(descriptors)),
		byID:  make(map[string]int, len(descriptors)),
	}

	for _, d := range descriptors {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidDescriptor, d.ID)
		}
		r.byID[d.ID] = len(r.tools)
		r.tools = append(r.tools, d)
	}

	return r, nil
}

// MustNew is like New but panics on invalid input. It is intended for
// package-level catalogs built from literals.
func MustNew(descriptors ...Descriptor) *Registry {
	r, err := New(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// All returns every descriptor in registry order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.tools))
	copy(out, r.tools)
	return out
}

// Get returns the descriptor for id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.tools[i], true
}

// GetByID is Get with an error for callers that propagate lookup misses.
func (r *Registry) GetByID(id string) (Descriptor, error) {
	d, ok := r.Get(id)
	if !ok {
		return Descriptor{}, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return d, nil
}

// Index returns the registry position of id, or -1.
func (r *Registry) Index(id string) int {
	if i, ok := r.byID[id]; ok {
		return i
	}
	return -1
}

// NameOf returns the tool name for id, falling back to id itself for
// unknown (dangling) references.
func (r *Registry) NameOf(id string) string {
	if d, ok := r.Get(id); ok {
		return d.Name
	}
	return id
}

// ListByCategory returns the tools in category, in registry order.
func (r *Registry) ListByCategory(category Category) []Descriptor {
	var out []Descriptor
	for _, d := range r.tools {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// ListCategories returns the distinct categories present, in first-seen order.
func (r *Registry) ListCategories() []Category {
	seen := make(map[Category]bool)
	var out []Category
	for _, d := range r.tools {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}
