// Package resolve implements the dependency resolution engine. One shared
// per-step algorithm is realized in two execution modes: a sequential mode
// built on direct recursive calls and a concurrent mode built on errgroup
// spawn/join. Both leave the dependency graph and declaration registry in
// the same state for the same input graph and resolver behavior.
package resolve

import (
	"context"
	"path/filepath"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Engine recomputes and records a unit's direct and transitive dependency
// edges against the session's graph, classifying each resolved path and
// surfacing resolution failures.
type Engine struct {
	session   *domain.Session
	reader    ports.SourceReader
	extractor ports.ImportExtractor
	logger    ports.Logger
}

// NewEngine creates a new resolution Engine bound to a session.
func NewEngine(
	session *domain.Session,
	reader ports.SourceReader,
	extractor ports.ImportExtractor,
	logger ports.Logger,
) *Engine {
	return &Engine{
		session:   session,
		reader:    reader,
		extractor: extractor,
		logger:    logger,
	}
}

// runner executes the per-import steps of one resolution pass. The two
// implementations are the only difference between the execution modes.
type runner func(ctx context.Context, steps []func(context.Context) error) error

// runSerial executes steps one at a time, immediately propagating the first
// failure.
func runSerial(ctx context.Context, steps []func(context.Context) error) error {
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// runParallel executes steps concurrently and waits for all to finish or the
// first failure, which cancels the join without waiting for siblings.
func runParallel(ctx context.Context, steps []func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, step := range steps {
		g.Go(func() error {
			return step(ctx)
		})
	}
	return g.Wait()
}

// ResolveSequential runs one blocking resolution pass for the unit.
func (e *Engine) ResolveSequential(ctx context.Context, unit domain.InternedString, resolver ports.PathResolver) error {
	return e.start(ctx, unit, resolver, runSerial)
}

// ResolveConcurrent runs one resolution pass for the unit with independent
// import resolutions, including recursive descents, overlapping.
func (e *Engine) ResolveConcurrent(ctx context.Context, unit domain.InternedString, resolver ports.PathResolver) error {
	return e.start(ctx, unit, resolver, runParallel)
}

// start begins a pass at the root unit. The root is always re-resolved on
// request; its validity flag is set so a cyclic import back into the root is
// not re-entered, and cleared again if the pass fails.
func (e *Engine) start(ctx context.Context, unit domain.InternedString, resolver ports.PathResolver, run runner) error {
	e.session.Validity.Set(unit)
	if err := e.resolve(ctx, unit, resolver, run); err != nil {
		e.session.Validity.Clear(unit)
		return err
	}
	return nil
}

// resolve performs one pass over a single unit: clear its dependency list,
// load its text if needed, extract the raw specifiers and process each one
// through the mode's runner.
func (e *Engine) resolve(ctx context.Context, unit domain.InternedString, resolver ports.PathResolver, run runner) error {
	e.session.Graph.Reset(unit)

	text, err := e.loadText(ctx, unit)
	if err != nil {
		return err
	}

	specs, err := e.extractor.Imports(unit.String(), text)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to extract imports"), "unit", unit.String())
	}

	baseDir := filepath.Dir(unit.String())
	steps := make([]func(context.Context) error, 0, len(specs))
	for _, spec := range specs {
		steps = append(steps, func(ctx context.Context) error {
			return e.resolveImport(ctx, unit, baseDir, spec, resolver, run)
		})
	}

	return run(ctx, steps)
}

func (e *Engine) loadText(ctx context.Context, unit domain.InternedString) (string, error) {
	if u, ok := e.session.Units.Get(unit); ok {
		return u.Text, nil
	}

	text, err := e.reader.Read(ctx, unit.String())
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to load unit"), "path", unit.String())
	}
	u, _ := e.session.Units.Upsert(unit, text)
	return u.Text, nil
}

// resolveImport handles one raw specifier: map it to an absolute path, then
// classify and possibly recurse. A failure wraps the underlying resolver
// error with the specifier and the importing unit, chaining context through
// nested failures instead of replacing it.
func (e *Engine) resolveImport(
	ctx context.Context,
	importer domain.InternedString,
	baseDir, spec string,
	resolver ports.PathResolver,
	run runner,
) error {
	resolved, err := e.resolveSpecifier(ctx, baseDir, spec, resolver)
	if err != nil {
		return zerr.With(zerr.With(
			zerr.Wrap(err, domain.ErrUnresolvedImport.Error()),
			"specifier", spec),
			"importer", importer.String(),
		)
	}
	return e.classify(ctx, importer, resolved, resolver, run)
}

// resolveSpecifier applies the extension fallback order. A specifier with no
// extension is tried with the source suffix first, then the declaration
// suffix, then as given. A specifier already carrying the declaration suffix
// is treated as absolute and skips resolution entirely.
func (e *Engine) resolveSpecifier(ctx context.Context, baseDir, spec string, resolver ports.PathResolver) (string, error) {
	if domain.IsDeclarationPath(spec) {
		return spec, nil
	}

	if filepath.Ext(spec) == "" {
		if path, err := resolver.Resolve(ctx, baseDir, spec+domain.ExtSource); err == nil {
			return path, nil
		}
		if path, err := resolver.Resolve(ctx, baseDir, spec+domain.ExtDeclaration); err == nil {
			return path, nil
		}
		return resolver.Resolve(ctx, baseDir, spec)
	}

	return resolver.Resolve(ctx, baseDir, spec)
}

// classify records the resolved path according to its suffix.
//
// Declarations go to the global registry, never to the importer's edge list;
// a newly registered declaration has its own imports resolved once. Compiled
// module references are opaque runtime dependencies and are ignored
// entirely. Anything else becomes a direct edge and is recursed into behind
// the validity flag, which is cleared again when the recursive resolution
// fails so a later pass can retry.
func (e *Engine) classify(
	ctx context.Context,
	importer domain.InternedString,
	resolved string,
	resolver ports.PathResolver,
	run runner,
) error {
	path := domain.NewInternedString(resolved)

	switch {
	case domain.IsDeclarationPath(resolved):
		if e.session.Decls.Add(path) {
			if err := e.resolve(ctx, path, resolver, run); err != nil {
				return zerr.With(zerr.With(
					zerr.Wrap(err, "failed to resolve declaration"),
					"declaration", resolved),
					"importer", importer.String(),
				)
			}
		}
		return nil

	case domain.IsCompiledPath(resolved):
		return nil

	default:
		e.session.Graph.AddEdge(importer, path)

		if e.session.Validity.Begin(path) {
			if err := e.resolve(ctx, path, resolver, run); err != nil {
				e.session.Validity.Clear(path)
				return zerr.With(zerr.With(
					zerr.Wrap(err, "failed to resolve dependencies"),
					"unit", resolved),
					"importer", importer.String(),
				)
			}
		}
		return nil
	}
}
