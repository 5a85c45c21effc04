package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/linger/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/golangci"  //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/linger/internal/engine/coordinator"
	"go.trai.ch/linger/internal/engine/resultcache"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// NotifierNodeID is the unique identifier for the failure notifier Graft node.
	NotifierNodeID graft.ID = "app.notifier"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// Notifier Node
	graft.Register(graft.Node[*Notifier]{
		ID:        NotifierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Notifier, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewNotifier(log, clockwork.NewRealClock(), settings.NotifyInterval), nil
		},
	})

	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			config.NodeID,
			shell.NodeID,
			coordinator.NodeID,
			resultcache.NodeID,
			cas.NodeID,
			golangci.NodeID,
			fs.NodeID,
			NotifierNodeID,
			logger.NodeID,
			metrics.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.SettingsNodeID,
			metrics.PrometheusNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // One branch per dependency.
func runAppNode(ctx context.Context) (*App, error) {
	var (
		deps Deps
		err  error
	)

	if deps.Settings, err = graft.Dep[domain.Settings](ctx); err != nil {
		return nil, err
	}
	if deps.Loader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if deps.Runner, err = graft.Dep[ports.ProcessRunner](ctx); err != nil {
		return nil, err
	}
	if deps.Coordinator, err = graft.Dep[*coordinator.Coordinator](ctx); err != nil {
		return nil, err
	}
	if deps.Cache, err = graft.Dep[*resultcache.Cache](ctx); err != nil {
		return nil, err
	}
	if deps.Store, err = graft.Dep[ports.ResultStore](ctx); err != nil {
		return nil, err
	}
	if deps.Parser, err = graft.Dep[ports.ReportParser](ctx); err != nil {
		return nil, err
	}
	if deps.Documents, err = graft.Dep[ports.DocumentSource](ctx); err != nil {
		return nil, err
	}
	if deps.Notifier, err = graft.Dep[*Notifier](ctx); err != nil {
		return nil, err
	}
	if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if deps.Metrics, err = graft.Dep[ports.Metrics](ctx); err != nil {
		return nil, err
	}
	if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}

	a := New(deps)
	if err := a.Restore(); err != nil {
		// A corrupt store only costs a cold cache.
		deps.Logger.Warn("starting with an empty result cache")
		deps.Logger.Error(err)
	}
	return a, nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	prom, err := graft.Dep[*metrics.Prometheus](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(a, log, settings, prom), nil
}
