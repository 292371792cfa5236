// Package compile implements the compilation facade tying dependency
// resolution to the external semantic engine.
package compile

import (
	"context"
	"fmt"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// Mode selects the execution mode for dependency resolution. Callers pick
// one mode per compilation; the two are never mixed within a single pass.
type Mode string

const (
	// ModeConcurrent resolves independent imports concurrently.
	ModeConcurrent Mode = "concurrent"
	// ModeSequential resolves one import at a time, blocking.
	ModeSequential Mode = "sequential"
)

// Compiler orchestrates one compile-and-check cycle for a unit.
type Compiler struct {
	session   *domain.Session
	options   *domain.Options
	engine    *resolve.Engine
	resolver  ports.PathResolver
	semantic  ports.SemanticEngine
	telemetry ports.Telemetry
	logger    ports.Logger
}

// NewCompiler creates a new Compiler.
func NewCompiler(
	session *domain.Session,
	options *domain.Options,
	engine *resolve.Engine,
	resolver ports.PathResolver,
	semantic ports.SemanticEngine,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *Compiler {
	return &Compiler{
		session:   session,
		options:   options,
		engine:    engine,
		resolver:  resolver,
		semantic:  semantic,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Compile runs one compile-and-check cycle: resolve the preamble once per
// session, resolve the unit's dependencies in the chosen mode, request
// emission, then collect outstanding diagnostics across every known unit
// plus the global configuration.
//
// Regardless of outcome the caller-supplied sink is cleared and repopulated
// with the unit's dependency chain on the way out, so partial or failed
// passes still leave a best-effort chain available for the next incremental
// attempt.
func (c *Compiler) Compile(
	ctx context.Context,
	path string,
	mode Mode,
	sink domain.DependencySink,
) (result *domain.CompileResult, err error) {
	unit := domain.NewInternedString(path)

	defer func() {
		sink.Clear()
		domain.ApplyChain(c.session.Graph, c.session.Decls, unit, sink)
	}()

	if err := c.ensurePreamble(ctx, mode); err != nil {
		return nil, err
	}

	rctx, vtx := c.telemetry.Record(ctx, "resolve "+path)
	err = c.resolveMode(rctx, unit, mode)
	vtx.Done(err)
	if err != nil {
		return nil, err
	}

	out, err := c.semantic.EmitOutput(ctx, unit)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "emission failed"), "unit", path)
	}

	if diags := c.collectDiagnostics(ctx); len(diags) > 0 {
		return &domain.CompileResult{
			Status:      domain.StatusDiagnostics,
			Diagnostics: diags,
		}, nil
	}

	if out.Skipped {
		return &domain.CompileResult{Status: domain.StatusEmitSkipped}, nil
	}

	return &domain.CompileResult{Status: domain.StatusOK, Output: out}, nil
}

// Resolve runs a bare resolution pass without emission, for callers that
// only need dependency information.
func (c *Compiler) Resolve(ctx context.Context, path string, mode Mode) error {
	return c.resolveMode(ctx, domain.NewInternedString(path), mode)
}

func (c *Compiler) resolveMode(ctx context.Context, unit domain.InternedString, mode Mode) error {
	if mode == ModeSequential {
		return c.engine.ResolveSequential(ctx, unit, c.resolver)
	}
	return c.engine.ResolveConcurrent(ctx, unit, c.resolver)
}

// ensurePreamble resolves the configured global preamble unit exactly once
// per session lifetime, guarded by a boolean latch.
func (c *Compiler) ensurePreamble(ctx context.Context, mode Mode) error {
	if c.options.Preamble == "" {
		return nil
	}
	if !c.session.BeginPreamble() {
		return nil
	}

	unit := domain.NewInternedString(c.options.Preamble)
	c.session.Decls.Add(unit)

	if err := c.resolveMode(ctx, unit, mode); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to resolve preamble"), "preamble", c.options.Preamble)
	}
	c.logger.Info(fmt.Sprintf("resolved preamble %s", c.options.Preamble))
	return nil
}

// collectDiagnostics gathers syntactic and semantic diagnostics across every
// known unit, not just the compile target, plus configuration diagnostics.
func (c *Compiler) collectDiagnostics(ctx context.Context) []domain.Diagnostic {
	diags := c.semantic.OptionsDiagnostics(ctx)

	for _, unit := range c.session.Units.Paths() {
		diags = append(diags, c.semantic.SyntacticDiagnostics(ctx, unit)...)
		diags = append(diags, c.semantic.SemanticDiagnostics(ctx, unit)...)
	}
	return diags
}
