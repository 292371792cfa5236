// Package domain contains the core domain models for the incremental
// dependency-tracking layer: units, the dependency graph, the declaration
// registry and the traversals built on top of them.
package domain

import (
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Well-known unit suffixes. Classification during resolution is purely
// suffix-based.
const (
	// ExtSource is the suffix of a compilable source unit.
	ExtSource = ".ts"
	// ExtDeclaration is the suffix of an ambient declaration unit.
	ExtDeclaration = ".d.ts"
	// ExtCompiled is the suffix of an already-compiled module reference,
	// which is opaque to the dependency graph.
	ExtCompiled = ".js"
)

// IsDeclarationPath reports whether path names a declaration unit.
func IsDeclarationPath(path string) bool {
	return strings.HasSuffix(path, ExtDeclaration)
}

// IsCompiledPath reports whether path names a compiled module reference.
// Declaration units also end in a compiled-looking suffix chain, so the
// declaration check must run first; this helper only answers for paths that
// are not declarations.
func IsCompiledPath(path string) bool {
	return !IsDeclarationPath(path) && strings.HasSuffix(path, ExtCompiled)
}

// Unit is one source file tracked by a build session, identified by its
// absolute path. Version starts at 0 and increments only when an update
// actually changes the text.
type Unit struct {
	Path    InternedString
	Text    string
	Version int

	hash uint64
}

// UnitStore holds the in-memory text and version counter per unit. Units are
// never deleted during a session; stale units are superseded by updates.
type UnitStore struct {
	mu    sync.RWMutex
	units map[InternedString]*Unit
}

// NewUnitStore creates an empty UnitStore.
func NewUnitStore() *UnitStore {
	return &UnitStore{
		units: make(map[InternedString]*Unit),
	}
}

// Get returns a copy of the unit for the given path.
func (s *UnitStore) Get(path InternedString) (Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.units[path]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Has reports whether a unit exists for the given path.
func (s *UnitStore) Has(path InternedString) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.units[path]
	return ok
}

// Upsert records the text for a unit, creating it at version 0 on first
// observation. Change detection is content-addressed: writing identical text
// is a no-op bump, while changed text increments the version by exactly 1.
// It returns a copy of the resulting unit and whether the text changed.
func (s *UnitStore) Upsert(path InternedString, text string) (Unit, bool) {
	h := xxhash.Sum64String(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.units[path]
	if !ok {
		u = &Unit{Path: path, Text: text, hash: h}
		s.units[path] = u
		return *u, true
	}

	if u.hash == h && u.Text == text {
		return *u, false
	}

	u.Text = text
	u.hash = h
	u.Version++
	return *u, true
}

// Paths returns the identities of all known units in sorted order.
func (s *UnitStore) Paths() []InternedString {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]InternedString, 0, len(s.units))
	for p := range s.units {
		paths = append(paths, p)
	}
	slices.SortFunc(paths, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return paths
}

// Len returns the number of known units.
func (s *UnitStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.units)
}
