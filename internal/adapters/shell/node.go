package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/core/ports"
)

// NodeID is the graft node ID for the process runner.
const NodeID graft.ID = "adapter.runner"

func init() {
	graft.Register(graft.Node[ports.ProcessRunner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessRunner, error) {
			return NewRunner(), nil
		},
	})
}
