package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/cmd/weft/commands"
	"go.trai.ch/weft/internal/adapters/fs"
	"go.trai.ch/weft/internal/adapters/syntax"
	"go.trai.ch/weft/internal/adapters/telemetry"
	"go.trai.ch/weft/internal/adapters/transpile"
	"go.trai.ch/weft/internal/adapters/watch"
	"go.trai.ch/weft/internal/app"
	"go.trai.ch/weft/internal/build"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/compile"
	"go.trai.ch/weft/internal/engine/resolve"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Error(error) {}

func newCLI(t *testing.T, rootDir string) (*commands.CLI, *bytes.Buffer) {
	t.Helper()

	options := domain.DefaultOptions()
	options.RootDir = rootDir

	session := domain.NewSession()
	reader := fs.NewReader()
	engine := resolve.NewEngine(session, reader, syntax.NewExtractor(), nopLogger{})
	semantic := transpile.NewEngine(session, options)
	compiler := compile.NewCompiler(session, options, engine, fs.NewResolver(), semantic, telemetry.NewNoOp(), nopLogger{})

	watcher, err := watch.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = watcher.Close() })

	a := app.New(session, options, compiler, reader, watcher, nopLogger{})

	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOut(&out)
	return cli, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCompileCommand(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "import { x } from \"./util.ts\";\nconsole.log(x);\n")
	utilPath := writeFile(t, tmpDir, "util.ts", "export const x = 1;\n")

	cli, out := newCLI(t, tmpDir)
	cli.SetArgs([]string{"compile", "--serial", "--chain", mainPath})

	require.NoError(t, cli.Execute(context.Background()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, mainPath, lines[0])
	assert.Equal(t, utilPath, lines[1])
	assert.Contains(t, lines[2], "emitted ")
	assert.Contains(t, lines[2], filepath.Join("dist", "main.js"))
}

func TestCompileCommand_Diagnostics(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "function f() {\n  return 1;\n")

	cli, out := newCLI(t, tmpDir)
	cli.SetArgs([]string{"compile", mainPath})

	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCompilationFailed)
	assert.Contains(t, out.String(), "unclosed")
}

func TestCompileCommand_MissingArg(t *testing.T) {
	tmpDir := t.TempDir()

	cli, _ := newCLI(t, tmpDir)
	cli.SetArgs([]string{"compile"})

	require.Error(t, cli.Execute(context.Background()))
}

func TestWhyCommand(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "import { u } from \"./util.ts\";\n")
	utilPath := writeFile(t, tmpDir, "util.ts", "export const u = 1;\n")

	cli, out := newCLI(t, tmpDir)
	cli.SetArgs([]string{"why", "--changed", utilPath, mainPath})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), mainPath+" -> "+utilPath)
}

func TestWhyCommand_NoReachableChange(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "export const x = 1;\n")
	otherPath := writeFile(t, tmpDir, "other.ts", "export const y = 1;\n")

	cli, out := newCLI(t, tmpDir)
	cli.SetArgs([]string{"why", "--changed", otherPath, mainPath})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "no changed dependency reachable")
}

func TestWhyCommand_ChangedFlagRequired(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "export const x = 1;\n")

	cli, _ := newCLI(t, tmpDir)
	cli.SetArgs([]string{"why", mainPath})

	require.Error(t, cli.Execute(context.Background()))
}

func TestVersionCommand(t *testing.T) {
	tmpDir := t.TempDir()

	cli, out := newCLI(t, tmpDir)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, build.Version, strings.TrimSpace(out.String()))
}

func TestWatchCommand_StopsOnContextDone(t *testing.T) {
	tmpDir := t.TempDir()
	mainPath := writeFile(t, tmpDir, "main.ts", "export const x = 1;\n")

	ctx, cancel := context.WithCancel(context.Background())

	cli, _ := newCLI(t, tmpDir)
	cli.SetArgs([]string{"watch", mainPath})

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute(ctx)
	}()

	cancel()
	require.NoError(t, <-done)
}
