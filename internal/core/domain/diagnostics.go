package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// DiagnosticKind classifies a diagnostic record by its origin.
type DiagnosticKind string

const (
	// DiagSyntactic is a diagnostic from syntax analysis of one unit.
	DiagSyntactic DiagnosticKind = "syntactic"
	// DiagSemantic is a diagnostic from semantic analysis of one unit.
	DiagSemantic DiagnosticKind = "semantic"
	// DiagOptions is a diagnostic about the global compiler configuration.
	DiagOptions DiagnosticKind = "options"
)

// Diagnostic is one record reported by the semantic engine. Diagnostics are
// a normal, expected user-facing outcome, not an internal error.
type Diagnostic struct {
	Kind    DiagnosticKind
	Unit    InternedString
	Line    int
	Message string
}

// String renders the diagnostic in a compiler-style one-line format.
func (d Diagnostic) String() string {
	if d.Unit.String() == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", d.Unit, d.Line, d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Unit, d.Kind, d.Message)
}

// EmittedFile is one output artifact produced by the semantic engine.
type EmittedFile struct {
	Path string
	Text string
}

// EmitOutput is the result of requesting emission for a unit.
type EmitOutput struct {
	Files      []EmittedFile
	SourceMaps []EmittedFile
	// Skipped is set when the engine declined to produce output for reasons
	// other than diagnostics.
	Skipped bool
}

// CompileStatus enumerates the outcomes of one compile-and-check cycle.
type CompileStatus string

const (
	// StatusOK indicates emission succeeded with no diagnostics.
	StatusOK CompileStatus = "ok"
	// StatusDiagnostics indicates the engine reported diagnostics.
	StatusDiagnostics CompileStatus = "diagnostics"
	// StatusEmitSkipped indicates the engine skipped emission.
	StatusEmitSkipped CompileStatus = "emit-skipped"
)

// CompileResult carries either an emitted output or a structured failure.
// Diagnostics are surfaced here as a first-class return value rather than as
// an error, so the "diagnostics present" path stays directly testable.
type CompileResult struct {
	Status      CompileStatus
	Output      *EmitOutput
	Diagnostics []Diagnostic
}

// Failed reports whether the cycle produced anything other than output.
func (r *CompileResult) Failed() bool {
	return r.Status != StatusOK
}

// Err maps a failed result onto the matching sentinel error, for callers
// that need an error value (such as a CLI exit path). It returns nil for a
// successful result.
func (r *CompileResult) Err() error {
	switch r.Status {
	case StatusDiagnostics:
		return zerr.With(ErrCompilationFailed, "diagnostics", len(r.Diagnostics))
	case StatusEmitSkipped:
		return ErrEmitSkipped
	default:
		return nil
	}
}
