package domain

import "sync"

// Validity tracks the per-unit in-flight flag used to break recursion on
// cyclic imports. A unit whose flag is set is not re-entered by the
// resolution engine; a failed resolution clears the flag again so a later
// pass can retry instead of treating the unit as permanently resolved.
//
// The flag is resolution-specific and pass-scoped. It must never be used for
// graph traversals, which carry their own visited sets.
type Validity struct {
	mu    sync.Mutex
	valid map[InternedString]bool
}

// NewValidity creates an empty Validity tracker.
func NewValidity() *Validity {
	return &Validity{
		valid: make(map[InternedString]bool),
	}
}

// Begin atomically sets the flag for a unit. It returns true if the flag was
// previously unset, meaning the caller owns the resolution of that unit.
func (v *Validity) Begin(path InternedString) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.valid[path] {
		return false
	}
	v.valid[path] = true
	return true
}

// Set marks a unit as entering resolution regardless of its current state.
// It is used for the root unit of a pass, which is re-resolved on request.
func (v *Validity) Set(path InternedString) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.valid[path] = true
}

// Clear resets the flag after a failed resolution.
func (v *Validity) Clear(path InternedString) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.valid, path)
}

// IsSet reports whether the flag is set for a unit.
func (v *Validity) IsSet(path InternedString) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.valid[path]
}
