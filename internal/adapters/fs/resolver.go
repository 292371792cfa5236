// Package fs provides the filesystem-backed path resolver and source reader.
package fs

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver implements ports.PathResolver against the local filesystem.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve joins the specifier with the base directory, verifies a file
// exists at the derived location and returns its absolute path.
func (r *Resolver) Resolve(ctx context.Context, baseDir, specifier string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := specifier
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, specifier)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.With(zerr.Wrap(err, "no file at resolved location"),
			"specifier", specifier),
			"base_dir", baseDir,
		)
	}
	if info.IsDir() {
		return "", zerr.With(zerr.With(zerr.New("resolved location is a directory"),
			"specifier", specifier),
			"base_dir", baseDir,
		)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to absolutize path"), "path", path)
	}
	return abs, nil
}
