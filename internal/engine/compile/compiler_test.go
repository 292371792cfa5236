package compile_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/syntax"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/compile"
	"go.trai.ch/weft/internal/engine/resolve"
	"go.trai.ch/zerr"
)

// memResolver resolves specifiers against the key set of an in-memory
// source map.
type memResolver struct {
	mu    sync.Mutex
	texts map[string]string
}

func (r *memResolver) Resolve(_ context.Context, baseDir, specifier string) (string, error) {
	path := specifier
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, specifier)
	}

	r.mu.Lock()
	_, ok := r.texts[path]
	r.mu.Unlock()

	if !ok {
		return "", zerr.With(zerr.New("no unit at path"), "path", path)
	}
	return path, nil
}

func (r *memResolver) Read(_ context.Context, path string) (string, error) {
	r.mu.Lock()
	text, ok := r.texts[path]
	r.mu.Unlock()
	if !ok {
		return "", zerr.With(zerr.New("unit not found"), "path", path)
	}
	return text, nil
}

// fakeSemantic is a scriptable semantic engine. Unset fields behave as a
// clean engine with no diagnostics.
type fakeSemantic struct {
	output     *domain.EmitOutput
	emitErr    error
	syntactic  map[string][]domain.Diagnostic
	optionsDgs []domain.Diagnostic

	emitted []string
}

func (s *fakeSemantic) EmitOutput(_ context.Context, unit domain.InternedString) (*domain.EmitOutput, error) {
	s.emitted = append(s.emitted, unit.String())
	if s.emitErr != nil {
		return nil, s.emitErr
	}
	if s.output != nil {
		return s.output, nil
	}
	return &domain.EmitOutput{}, nil
}

func (s *fakeSemantic) SyntacticDiagnostics(_ context.Context, unit domain.InternedString) []domain.Diagnostic {
	return s.syntactic[unit.String()]
}

func (s *fakeSemantic) SemanticDiagnostics(context.Context, domain.InternedString) []domain.Diagnostic {
	return nil
}

func (s *fakeSemantic) OptionsDiagnostics(context.Context) []domain.Diagnostic {
	return s.optionsDgs
}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Error(error) {}

func fixture(texts map[string]string, options *domain.Options, semantic *fakeSemantic) (*domain.Session, *compile.Compiler) {
	session := domain.NewSession()
	resolver := &memResolver{texts: texts}
	engine := resolve.NewEngine(session, resolver, syntax.NewExtractor(), nopLogger{})
	compiler := compile.NewCompiler(session, options, engine, resolver, semantic, telemetry.NewNoOp(), nopLogger{})
	return session, compiler
}

func TestCompiler_Compile_OK(t *testing.T) {
	semantic := &fakeSemantic{
		output: &domain.EmitOutput{
			Files: []domain.EmittedFile{{Path: "/out/main.js", Text: "var x = 1;\n"}},
		},
	}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "import { x } from \"./util.ts\";\n",
		"/src/util.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	result, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOK, result.Status)
	assert.False(t, result.Failed())
	require.NoError(t, result.Err())
	require.NotNil(t, result.Output)
	assert.Len(t, result.Output.Files, 1)

	assert.Equal(t, []string{"/src/main.ts"}, semantic.emitted)
	assert.Equal(t, []string{"/src/main.ts", "/src/util.ts"}, sink.Paths())
}

func TestCompiler_Compile_Diagnostics(t *testing.T) {
	semantic := &fakeSemantic{
		syntactic: map[string][]domain.Diagnostic{
			"/src/util.ts": {{
				Kind:    domain.DiagSyntactic,
				Unit:    domain.NewInternedString("/src/util.ts"),
				Line:    1,
				Message: "unexpected token",
			}},
		},
	}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "import { x } from \"./util.ts\";\n",
		"/src/util.ts": "export const x = ;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	result, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDiagnostics, result.Status)
	assert.True(t, result.Failed())
	require.Error(t, result.Err())
	assert.ErrorIs(t, result.Err(), domain.ErrCompilationFailed)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "unexpected token", result.Diagnostics[0].Message)

	// Diagnostics still leave a usable chain behind.
	assert.Equal(t, []string{"/src/main.ts", "/src/util.ts"}, sink.Paths())
}

func TestCompiler_Compile_EmitSkipped(t *testing.T) {
	semantic := &fakeSemantic{output: &domain.EmitOutput{Skipped: true}}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	result, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEmitSkipped, result.Status)
	assert.ErrorIs(t, result.Err(), domain.ErrEmitSkipped)
}

func TestCompiler_Compile_SinkRepopulatedOnFailure(t *testing.T) {
	semantic := &fakeSemantic{}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "import { x } from \"./util.ts\";\nimport { gone } from \"./missing.ts\";\n",
		"/src/util.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	sink.Add(domain.NewInternedString("/stale/previous.ts"))

	_, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
	require.Error(t, err)

	// The stale entry is gone and the partial chain from the failed pass is
	// in place: the root plus the dependency that did resolve.
	paths := sink.Paths()
	assert.NotContains(t, paths, "/stale/previous.ts")
	assert.Contains(t, paths, "/src/main.ts")
	assert.Contains(t, paths, "/src/util.ts")

	assert.Empty(t, semantic.emitted, "emission is not requested when resolution fails")
}

func TestCompiler_Compile_EmitErrorStillPopulatesSink(t *testing.T) {
	semantic := &fakeSemantic{emitErr: zerr.New("engine crashed")}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	_, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emission failed")

	assert.Equal(t, []string{"/src/main.ts"}, sink.Paths())
}

func TestCompiler_Compile_PreambleResolvedOnce(t *testing.T) {
	options := domain.DefaultOptions()
	options.Preamble = "/src/globals.d.ts"

	semantic := &fakeSemantic{}
	session, compiler := fixture(map[string]string{
		"/src/main.ts":      "export const x = 1;\n",
		"/src/globals.d.ts": "declare const globalThing: number;\n",
	}, options, semantic)

	sink := domain.NewChainList()
	for range 3 {
		_, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeSequential, sink)
		require.NoError(t, err)
	}

	assert.True(t, session.Decls.Contains(domain.NewInternedString("/src/globals.d.ts")))
	assert.Equal(t, 1, session.Decls.Len())

	// The preamble is visible in every chain even though the compile target
	// never imports it.
	assert.Contains(t, sink.Paths(), "/src/globals.d.ts")
}

func TestCompiler_Compile_OptionsDiagnostics(t *testing.T) {
	semantic := &fakeSemantic{
		optionsDgs: []domain.Diagnostic{{
			Kind:    domain.DiagOptions,
			Message: "unsupported configuration version",
		}},
	}
	_, compiler := fixture(map[string]string{
		"/src/main.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	sink := domain.NewChainList()
	result, err := compiler.Compile(context.Background(), "/src/main.ts", compile.ModeConcurrent, sink)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDiagnostics, result.Status)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, domain.DiagOptions, result.Diagnostics[0].Kind)
}

func TestCompiler_Resolve(t *testing.T) {
	semantic := &fakeSemantic{}
	session, compiler := fixture(map[string]string{
		"/src/main.ts": "import { x } from \"./util.ts\";\n",
		"/src/util.ts": "export const x = 1;\n",
	}, domain.DefaultOptions(), semantic)

	require.NoError(t, compiler.Resolve(context.Background(), "/src/main.ts", compile.ModeSequential))

	assert.Equal(t, []string{"/src/util.ts"}, session.Graph.Snapshot()["/src/main.ts"])
	assert.Empty(t, semantic.emitted)
}
