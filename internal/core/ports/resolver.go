// Package ports defines the core interfaces for the application.
package ports

import "context"

// PathResolver maps a raw module specifier to an absolute path. It is an
// external collaborator supplied by the host build tool.
//
// Resolve must be deterministic for a given (baseDir, specifier) pair within
// one build, and must fail when no file exists at the derived location. The
// context serves both execution modes: the blocking mode calls it inline and
// the concurrent mode calls it from overlapping goroutines.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	Resolve(ctx context.Context, baseDir, specifier string) (string, error)
}
