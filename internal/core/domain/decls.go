package domain

import (
	"slices"
	"sync"
)

// DeclRegistry is the set of ambient declaration units known to a session.
// Declarations affect every compilation unit implicitly, so they are tracked
// globally rather than as per-importer edges. The registry is append-only
// for the lifetime of the session.
type DeclRegistry struct {
	mu    sync.RWMutex
	known map[InternedString]bool
	order []InternedString
}

// NewDeclRegistry creates an empty DeclRegistry.
func NewDeclRegistry() *DeclRegistry {
	return &DeclRegistry{
		known: make(map[InternedString]bool),
	}
}

// Add registers a declaration unit. It returns true if the unit was newly
// added, which is the signal to resolve the declaration's own imports.
func (r *DeclRegistry) Add(path InternedString) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.known[path] {
		return false
	}
	r.known[path] = true
	r.order = append(r.order, path)
	return true
}

// Contains reports whether a declaration unit is already known.
func (r *DeclRegistry) Contains(path InternedString) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known[path]
}

// All returns the declaration units in discovery order.
func (r *DeclRegistry) All() []InternedString {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of known declaration units.
func (r *DeclRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
