package domain

import (
	"slices"
	"strings"
	"sync"
)

// Graph is the adjacency map from a unit to its direct dependency units.
// Edges are directed, unit -> its direct imports, and the graph may contain
// cycles; traversals stay cycle-safe via per-call visited sets, never via
// this structure. "No entry" and "empty dependency list" are equivalent:
// reads normalize the former to the latter.
type Graph struct {
	mu   sync.Mutex
	deps map[InternedString][]InternedString
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		deps: make(map[InternedString][]InternedString),
	}
}

// Reset clears the dependency list of a unit at the start of a resolution
// pass. Dependencies are never merged across passes, so stale edges cannot
// survive a changed import list.
func (g *Graph) Reset(unit InternedString) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deps[unit] = []InternedString{}
}

// AddEdge records a direct dependency edge in discovery order.
func (g *Graph) AddEdge(from, to InternedString) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.deps[from] = append(g.deps[from], to)
}

// Dependencies returns a copy of the direct dependency list of a unit,
// creating the empty entry if none exists yet.
func (g *Graph) Dependencies(unit InternedString) []InternedString {
	g.mu.Lock()
	defer g.mu.Unlock()

	deps, ok := g.deps[unit]
	if !ok {
		g.deps[unit] = []InternedString{}
		return nil
	}
	return slices.Clone(deps)
}

// Units returns the identities of all units with an entry, in sorted order.
func (g *Graph) Units() []InternedString {
	g.mu.Lock()
	defer g.mu.Unlock()

	units := make([]InternedString, 0, len(g.deps))
	for u := range g.deps {
		units = append(units, u)
	}
	slices.SortFunc(units, func(a, b InternedString) int {
		return strings.Compare(a.String(), b.String())
	})
	return units
}

// Snapshot returns a plain-string copy of the adjacency map. It is used to
// compare graph state across resolution modes.
func (g *Graph) Snapshot() map[string][]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := make(map[string][]string, len(g.deps))
	for u, deps := range g.deps {
		list := make([]string, len(deps))
		for i, d := range deps {
			list[i] = d.String()
		}
		snap[u.String()] = list
	}
	return snap
}
