package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/weft/internal/adapters/config"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Error(error) {}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Filename), []byte(content), 0o600))
}

func TestLoader_Load_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	opts, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "1", opts.Version)
	assert.Equal(t, tmpDir, opts.RootDir)
	assert.Equal(t, "dist", opts.OutDir)
	assert.Empty(t, opts.Preamble)
	assert.Empty(t, opts.Validate())
}

func TestLoader_Load_FullFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
root: src
outDir: build
preamble: globals.d.ts
`)

	opts, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "src"), opts.RootDir)
	assert.Equal(t, "build", opts.OutDir)
	assert.Equal(t, filepath.Join(tmpDir, "src", "globals.d.ts"), opts.Preamble)
	assert.Empty(t, opts.Validate())
}

func TestLoader_Load_AbsolutePreamble(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "preamble: /lib/globals.d.ts\n")

	opts, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/lib/globals.d.ts", opts.Preamble)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "outDir: out\n")

	opts, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "1", opts.Version)
	assert.Equal(t, tmpDir, opts.RootDir)
	assert.Equal(t, "out", opts.OutDir)
}

func TestLoader_Load_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "version: [\n")

	_, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoader_Load_UnsupportedVersionSurfacesAsDiagnostic(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "version: \"2\"\n")

	opts, err := config.NewLoader(nopLogger{}).Load(tmpDir)
	require.NoError(t, err)

	diags := opts.Validate()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unsupported configuration version")
}
