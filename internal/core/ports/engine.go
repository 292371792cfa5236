package ports

import (
	"context"

	"go.trai.ch/weft/internal/core/domain"
)

// SemanticEngine is the external semantic analysis and code generation
// engine, specified only at its interface boundary. The dependency-tracking
// layer never decides how a unit is compiled; it asks the engine for output
// and diagnostics and records the result.
//
//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type SemanticEngine interface {
	// EmitOutput requests emission for a unit.
	EmitOutput(ctx context.Context, unit domain.InternedString) (*domain.EmitOutput, error)

	// SyntacticDiagnostics returns the outstanding syntax diagnostics for a
	// unit, in report order.
	SyntacticDiagnostics(ctx context.Context, unit domain.InternedString) []domain.Diagnostic

	// SemanticDiagnostics returns the outstanding semantic diagnostics for a
	// unit, in report order.
	SemanticDiagnostics(ctx context.Context, unit domain.InternedString) []domain.Diagnostic

	// OptionsDiagnostics returns diagnostics about the global compiler
	// configuration.
	OptionsDiagnostics(ctx context.Context) []domain.Diagnostic
}
