// Package config provides the configuration loader for weft.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the default configuration file name.
const Filename = "weft.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a Loader for the default file name.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Filename: Filename,
		logger:   logger,
	}
}

// Load reads the configuration rooted at cwd. A missing file yields the
// default options; a malformed file is an error. Preamble and output paths
// are anchored at the configured root.
func (l *Loader) Load(cwd string) (*domain.Options, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // Path is derived from the working directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			opts := domain.DefaultOptions()
			opts.RootDir = cwd
			return opts, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Weftfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	opts := l.toOptions(cwd, &file)
	l.logger.Info(fmt.Sprintf("loaded configuration from %s", path))
	return opts, nil
}

func (l *Loader) toOptions(cwd string, file *Weftfile) *domain.Options {
	opts := domain.DefaultOptions()
	opts.RootDir = cwd

	if file.Version != "" {
		opts.Version = file.Version
	}
	if file.Root != "" {
		opts.RootDir = anchor(cwd, file.Root)
	}
	if file.OutDir != "" {
		opts.OutDir = file.OutDir
	}
	if file.Preamble != "" {
		opts.Preamble = anchor(opts.RootDir, file.Preamble)
	}
	return opts
}

func anchor(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
