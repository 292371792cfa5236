package syntax

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/weft/internal/core/ports"
)

// NodeID is the unique identifier for the import extractor node.
const NodeID graft.ID = "adapter.syntax.extractor"

func init() {
	graft.Register(graft.Node[ports.ImportExtractor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ImportExtractor, error) {
			return NewExtractor(), nil
		},
	})
}
