package domain

// RecompileReason finds one causal dependency path from unit to a member of
// the changed set, explaining why a recompilation was triggered. It returns
// the ordered path of unit identities ending at the changed unit, or nil if
// no changed unit is reachable.
//
// The search is depth-first in dependency-list order and the first match
// wins. List order is discovery order, so the result is deterministic for a
// fixed graph even though it is not necessarily the shortest causal path.
func RecompileReason(g *Graph, unit InternedString, changed map[InternedString]bool) []InternedString {
	visited := map[InternedString]bool{unit: true}
	return findReason(g, unit, changed, visited)
}

func findReason(g *Graph, unit InternedString, changed map[InternedString]bool, visited map[InternedString]bool) []InternedString {
	for _, dep := range g.Dependencies(unit) {
		if changed[dep] {
			return []InternedString{dep}
		}

		if visited[dep] {
			continue
		}
		visited[dep] = true

		if sub := findReason(g, dep, changed, visited); len(sub) > 0 {
			return append([]InternedString{dep}, sub...)
		}
	}
	return nil
}
