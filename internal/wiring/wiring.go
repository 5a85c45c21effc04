// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/linger/internal/adapters/cas"
	_ "go.trai.ch/linger/internal/adapters/config"
	_ "go.trai.ch/linger/internal/adapters/fs"
	_ "go.trai.ch/linger/internal/adapters/golangci"
	_ "go.trai.ch/linger/internal/adapters/logger"
	_ "go.trai.ch/linger/internal/adapters/metrics"
	_ "go.trai.ch/linger/internal/adapters/shell"
	_ "go.trai.ch/linger/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/linger/internal/app"
	_ "go.trai.ch/linger/internal/engine/coordinator"
	_ "go.trai.ch/linger/internal/engine/resultcache"
)
