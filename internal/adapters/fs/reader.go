package fs

import (
	"context"
	"os"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceReader = (*Reader)(nil)

// Reader implements ports.SourceReader using os.ReadFile.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the text of the unit at the given path.
func (r *Reader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path comes from resolution, not user templating
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrUnitNotFound.Error()), "path", path)
	}
	return string(data), nil
}
