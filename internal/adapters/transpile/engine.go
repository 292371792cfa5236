// Package transpile provides the built-in semantic engine: a minimal
// source-to-source emitter sufficient to drive the dependency-tracking layer
// end to end. A production type checker lives behind the same port.
package transpile

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SemanticEngine = (*Engine)(nil)

// Engine implements ports.SemanticEngine against the session's unit store.
type Engine struct {
	session *domain.Session
	options *domain.Options
}

// NewEngine creates a new Engine.
func NewEngine(session *domain.Session, options *domain.Options) *Engine {
	return &Engine{
		session: session,
		options: options,
	}
}

// specifierExt rewrites relative source-suffix specifiers in emitted text so
// the output references compiled modules.
var specifierExt = regexp.MustCompile(`(['"])(\.{1,2}/[^'"]*)\.ts(['"])`)

// EmitOutput produces the compiled artifact for a unit. Declaration units
// carry no executable code, so emission is skipped for them.
func (e *Engine) EmitOutput(_ context.Context, unit domain.InternedString) (*domain.EmitOutput, error) {
	u, ok := e.session.Units.Get(unit)
	if !ok {
		return nil, zerr.With(zerr.New("unit not loaded"), "unit", unit.String())
	}

	if domain.IsDeclarationPath(u.Path.String()) {
		return &domain.EmitOutput{Skipped: true}, nil
	}

	outPath := e.outputPath(u.Path.String())
	text := specifierExt.ReplaceAllString(u.Text, `$1$2.js$3`)

	return &domain.EmitOutput{
		Files: []domain.EmittedFile{
			{Path: outPath, Text: text},
		},
		SourceMaps: []domain.EmittedFile{
			{Path: outPath + ".map", Text: sourceMap(outPath, u.Path.String())},
		},
	}, nil
}

func (e *Engine) outputPath(unitPath string) string {
	base := strings.TrimSuffix(filepath.Base(unitPath), domain.ExtSource)
	return filepath.Join(e.options.RootDir, e.options.OutDir, base+domain.ExtCompiled)
}

func sourceMap(outPath, source string) string {
	return `{"version":3,"file":` + quote(filepath.Base(outPath)) + `,"sources":[` + quote(source) + `],"mappings":""}`
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// SyntacticDiagnostics scans a unit for unbalanced delimiters and
// unterminated strings.
func (e *Engine) SyntacticDiagnostics(_ context.Context, unit domain.InternedString) []domain.Diagnostic {
	u, ok := e.session.Units.Get(unit)
	if !ok {
		return nil
	}
	return scanSyntax(unit, u.Text)
}

// SemanticDiagnostics reports session inconsistencies for a unit: a recorded
// dependency edge whose target was never loaded means resolution and the
// unit store disagree.
func (e *Engine) SemanticDiagnostics(_ context.Context, unit domain.InternedString) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for _, dep := range e.session.Graph.Dependencies(unit) {
		if !e.session.Units.Has(dep) {
			diags = append(diags, domain.Diagnostic{
				Kind:    domain.DiagSemantic,
				Unit:    unit,
				Message: "dependency never loaded: " + dep.String(),
			})
		}
	}
	return diags
}

// OptionsDiagnostics validates the global configuration.
func (e *Engine) OptionsDiagnostics(_ context.Context) []domain.Diagnostic {
	return e.options.Validate()
}
