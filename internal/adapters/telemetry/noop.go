// Package telemetry provides implementations of the telemetry port.
package telemetry

import (
	"context"

	"go.trai.ch/weft/internal/core/ports"
)

var _ ports.Telemetry = (*NoOp)(nil)

// NoOp is a no-op implementation of ports.Telemetry.
type NoOp struct{}

// NewNoOp creates a new NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns a vertex that discards everything.
func (t *NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, &noopVertex{}
}

type noopVertex struct{}

func (v *noopVertex) Write(p []byte) (int, error) { return len(p), nil }

func (v *noopVertex) Done(_ error) {}
