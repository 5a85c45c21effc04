package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/core/ports"
)

// NodeID is the unique identifier for the document source Graft node.
const NodeID graft.ID = "adapter.documents"

func init() {
	graft.Register(graft.Node[ports.DocumentSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DocumentSource, error) {
			return NewDocuments(), nil
		},
	})
}
