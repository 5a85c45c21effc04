package golangci

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/core/ports"
)

// NodeID is the graft node ID for the report parser.
const NodeID graft.ID = "adapter.golangci"

func init() {
	graft.Register(graft.Node[ports.ReportParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ReportParser, error) {
			return NewParser(), nil
		},
	})
}
