package domain

import "go.trai.ch/zerr"

var (
	// ErrUnitNotFound is returned when a unit's source text cannot be read.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrUnresolvedImport is returned when a specifier cannot be mapped to an
	// absolute path after all fallback attempts.
	ErrUnresolvedImport = zerr.New("unresolved import")

	// ErrCompilationFailed is returned when the semantic engine reported one
	// or more diagnostics for the session.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrEmitSkipped is returned when the semantic engine declined to produce
	// output for reasons other than diagnostics.
	ErrEmitSkipped = zerr.New("emit skipped")
)
