// Package app implements the application layer for weft.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/compile"
	"go.trai.ch/zerr"
)

// App drives compile-and-check cycles for the CLI.
type App struct {
	session  *domain.Session
	options  *domain.Options
	compiler *compile.Compiler
	reader   ports.SourceReader
	watcher  ports.Watcher
	logger   ports.Logger

	sink *domain.ChainList
}

// New creates a new App instance.
func New(
	session *domain.Session,
	options *domain.Options,
	compiler *compile.Compiler,
	reader ports.SourceReader,
	watcher ports.Watcher,
	logger ports.Logger,
) *App {
	return &App{
		session:  session,
		options:  options,
		compiler: compiler,
		reader:   reader,
		watcher:  watcher,
		logger:   logger,
		sink:     domain.NewChainList(),
	}
}

// Compile runs one compile-and-check cycle for the file and writes the
// emitted output under the configured output directory. It returns the
// result and the unit's dependency chain.
func (a *App) Compile(ctx context.Context, path string, sequential bool) (*domain.CompileResult, []string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to absolutize target"), "path", path)
	}

	mode := compile.ModeConcurrent
	if sequential {
		mode = compile.ModeSequential
	}

	result, err := a.compiler.Compile(ctx, abs, mode, a.sink)
	chain := a.sink.Paths()
	if err != nil {
		return nil, chain, err
	}

	if result.Status == domain.StatusOK {
		if err := a.writeOutput(result.Output); err != nil {
			return nil, chain, err
		}
	}
	return result, chain, nil
}

// Why resolves the file and returns the causal dependency path from it to
// one of the changed files, or nil if none is reachable.
func (a *App) Why(ctx context.Context, path string, changed []string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to absolutize target"), "path", path)
	}

	if err := a.compiler.Resolve(ctx, abs, compile.ModeSequential); err != nil {
		return nil, err
	}

	changedSet := make(map[domain.InternedString]bool, len(changed))
	for _, c := range changed {
		cAbs, err := filepath.Abs(c)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to absolutize changed path"), "path", c)
		}
		changedSet[domain.NewInternedString(cAbs)] = true
	}

	reason := domain.RecompileReason(a.session.Graph, domain.NewInternedString(abs), changedSet)
	out := make([]string, len(reason))
	for i, r := range reason {
		out[i] = r.String()
	}
	return out, nil
}

// Watch compiles the file, then recompiles it whenever a unit in its
// dependency chain changes on disk. Writes that do not change unit content
// are no-ops. Watch blocks until the context is done or the watcher fails.
func (a *App) Watch(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to absolutize target"), "path", path)
	}
	root := domain.NewInternedString(abs)

	recompile := func() error {
		result, chain, err := a.Compile(ctx, abs, false)
		if err != nil {
			return err
		}
		a.report(result)
		return a.watcher.Watch(chain)
	}

	if err := recompile(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case changedPath, ok := <-a.watcher.Events():
			if !ok {
				return nil
			}
			changed, err := a.reload(ctx, changedPath)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			if !changed {
				continue
			}

			a.explain(root, changedPath)
			if err := recompile(); err != nil {
				a.logger.Error(err)
			}

		case err, ok := <-a.watcher.Errors():
			if !ok {
				return nil
			}
			return zerr.Wrap(err, "watcher failed")
		}
	}
}

// reload re-reads a changed file into the unit store and refreshes its
// dependency edges. It returns false when the write did not change content.
func (a *App) reload(ctx context.Context, path string) (bool, error) {
	text, err := a.reader.Read(ctx, path)
	if err != nil {
		return false, err
	}

	unit, changed := a.session.Units.Upsert(domain.NewInternedString(path), text)
	if !changed {
		return false, nil
	}

	a.logger.Info(fmt.Sprintf("%s changed (version %d)", path, unit.Version))
	return true, a.compiler.Resolve(ctx, path, compile.ModeSequential)
}

func (a *App) explain(root domain.InternedString, changedPath string) {
	changedSet := map[domain.InternedString]bool{
		domain.NewInternedString(changedPath): true,
	}
	reason := domain.RecompileReason(a.session.Graph, root, changedSet)
	if len(reason) == 0 {
		return
	}

	msg := root.String()
	for _, step := range reason {
		msg += " -> " + step.String()
	}
	a.logger.Info("recompiling: " + msg)
}

func (a *App) report(result *domain.CompileResult) {
	switch result.Status {
	case domain.StatusDiagnostics:
		for _, d := range result.Diagnostics {
			a.logger.Info(d.String())
		}
	case domain.StatusEmitSkipped:
		a.logger.Info("emit skipped")
	default:
		for _, f := range result.Output.Files {
			a.logger.Info("emitted " + f.Path)
		}
	}
}

func (a *App) writeOutput(out *domain.EmitOutput) error {
	files := make([]domain.EmittedFile, 0, len(out.Files)+len(out.SourceMaps))
	files = append(files, out.Files...)
	files = append(files, out.SourceMaps...)

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create output directory"), "path", dir)
		}
		if err := os.WriteFile(f.Path, []byte(f.Text), 0o644); err != nil { //nolint:gosec // Emitted output is world-readable
			return zerr.With(zerr.Wrap(err, "failed to write output file"), "path", f.Path)
		}
	}
	return nil
}
