package domain

// DependencySink is the caller-owned accumulator a dependency chain is
// written into. The chain applier writes through it but does not own its
// storage or lifecycle; callers reset it via Clear before each computation.
type DependencySink interface {
	// Add appends a unit to the accumulated chain.
	Add(path InternedString)
	// Clear empties the accumulator.
	Clear()
}

// ChainList is a simple ordered DependencySink backed by a slice.
type ChainList struct {
	paths []InternedString
}

// NewChainList creates an empty ChainList.
func NewChainList() *ChainList {
	return &ChainList{}
}

// Add appends a unit to the list.
func (c *ChainList) Add(path InternedString) {
	c.paths = append(c.paths, path)
}

// Clear empties the list.
func (c *ChainList) Clear() {
	c.paths = c.paths[:0]
}

// Paths returns the accumulated chain as strings, in emission order.
func (c *ChainList) Paths() []string {
	out := make([]string, len(c.paths))
	for i, p := range c.paths {
		out[i] = p.String()
	}
	return out
}

// ApplyChain populates sink with the transitive dependency chain of unit:
// the unit itself, every declaration unit, and every transitively reachable
// dependency, each added at most once per traversal.
//
// The traversal keeps two separate visited sets. A unit may be added to the
// sink through one path before its children are expanded through another, so
// "already emitted" and "already expanded" are tracked independently;
// expansion happens exactly once per unit regardless of how many times it is
// reached. The expanded set is also what makes the walk terminate on cyclic
// graphs.
func ApplyChain(g *Graph, decls *DeclRegistry, unit InternedString, sink DependencySink) {
	w := &chainWalk{
		graph:    g,
		decls:    decls,
		sink:     sink,
		emitted:  make(map[InternedString]bool),
		expanded: make(map[InternedString]bool),
	}
	w.expand(unit)
}

type chainWalk struct {
	graph        *Graph
	decls        *DeclRegistry
	sink         DependencySink
	emitted      map[InternedString]bool
	expanded     map[InternedString]bool
	declsApplied bool
}

func (w *chainWalk) emit(unit InternedString) {
	if w.emitted[unit] {
		return
	}
	w.emitted[unit] = true
	w.sink.Add(unit)
}

func (w *chainWalk) expand(unit InternedString) {
	if w.expanded[unit] {
		return
	}
	w.expanded[unit] = true

	w.emit(unit)

	// Declarations are global, not per-importer; they are applied once per
	// traversal no matter where in the graph the walk started.
	if !w.declsApplied {
		w.declsApplied = true
		for _, d := range w.decls.All() {
			w.emit(d)
		}
	}

	for _, dep := range w.graph.Dependencies(unit) {
		w.emit(dep)
		w.expand(dep)
	}
}
