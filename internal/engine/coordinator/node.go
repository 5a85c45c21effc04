package coordinator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/linger/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/linger/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/linger/internal/core/ports"
)

// NodeID is the unique identifier for the coordinator Graft node.
const NodeID graft.ID = "engine.coordinator"

func init() {
	graft.Register(graft.Node[*Coordinator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Coordinator, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(runner, m, tracer), nil
		},
	})
}
