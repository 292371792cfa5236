// Package syntax implements the import extractor. It locates raw module
// specifier strings in a unit's source; anything deeper than that is outside
// its contract.
package syntax

import (
	"regexp"
	"sort"

	"go.trai.ch/weft/internal/core/ports"
)

var _ ports.ImportExtractor = (*Extractor)(nil)

// The recognized reference forms. Each pattern captures the specifier as its
// first group.
var specifierPatterns = []*regexp.Regexp{
	// import defaultExport from "spec"; import { a, b } from 'spec';
	// import * as ns from "spec"; import "spec";
	regexp.MustCompile(`(?m)^[ \t]*import[ \t]+(?:[^'"\n]*?[ \t]from[ \t]+)?['"]([^'"]+)['"]`),
	// export { a } from "spec"; export * from 'spec';
	regexp.MustCompile(`(?m)^[ \t]*export[ \t]+[^'"\n]*?[ \t]from[ \t]+['"]([^'"]+)['"]`),
	// const x = require("spec")
	regexp.MustCompile(`require\(\s*['"]([^'"]+)['"]\s*\)`),
	// import("spec")
	regexp.MustCompile(`import\(\s*['"]([^'"]+)['"]\s*\)`),
	// /// <reference path="spec" />
	regexp.MustCompile(`///\s*<reference\s+path\s*=\s*['"]([^'"]+)['"]`),
}

// Extractor scans source text for module references.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

type match struct {
	offset int
	spec   string
}

// Imports returns the raw specifiers referenced by the unit, in source
// order, deduplicated within the unit.
func (e *Extractor) Imports(_, text string) ([]string, error) {
	var matches []match
	for _, pattern := range specifierPatterns {
		for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, match{
				offset: m[0],
				spec:   text[m[2]:m[3]],
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	seen := make(map[string]bool, len(matches))
	specs := make([]string, 0, len(matches))
	for _, m := range matches {
		if m.spec == "" || seen[m.spec] {
			continue
		}
		seen[m.spec] = true
		specs = append(specs, m.spec)
	}
	return specs, nil
}
