package ports

import "context"

// SourceReader loads the raw text of a unit. Failures propagate as
// unit-not-found.
//
//go:generate go run go.uber.org/mock/mockgen -source=reader.go -destination=mocks/mock_reader.go -package=mocks
type SourceReader interface {
	// Read returns the text of the unit at the given absolute path.
	Read(ctx context.Context, path string) (string, error)
}
