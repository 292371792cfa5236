package ports

import (
	"context"
	"io"
)

// Telemetry records progress for long-running steps such as a resolution
// pass or an emission request.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a named vertex of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)
}

// Vertex represents one recorded unit of work. Writes become log output
// attached to the vertex.
type Vertex interface {
	io.Writer
	// Done completes the vertex, with err non-nil on failure.
	Done(err error)
}
