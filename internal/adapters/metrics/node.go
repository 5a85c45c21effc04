package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the metrics Graft node.
	NodeID graft.ID = "adapter.metrics"
	// PrometheusNodeID exposes the concrete collector set for serving.
	PrometheusNodeID graft.ID = "adapter.metrics.prometheus"
)

func init() {
	graft.Register(graft.Node[*Prometheus]{
		ID:        PrometheusNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Prometheus, error) {
			return NewPrometheus(), nil
		},
	})

	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{PrometheusNodeID},
		Run: func(ctx context.Context) (ports.Metrics, error) {
			p, err := graft.Dep[*Prometheus](ctx)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	})
}
