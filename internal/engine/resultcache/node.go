package resultcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/linger/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/linger/internal/core/domain"
)

// NodeID is the unique identifier for the result cache Graft node.
const NodeID graft.ID = "engine.resultcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(settings.CacheCapacity)
		},
	})
}
