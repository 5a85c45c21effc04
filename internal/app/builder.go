package app

import (
	"go.trai.ch/linger/internal/adapters/metrics" //nolint:depguard // Served by the watch command
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
)

// Components holds everything the command layer needs.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings domain.Settings
	Metrics  *metrics.Prometheus
}

// NewComponents creates a new Components instance.
func NewComponents(
	app *App,
	logger ports.Logger,
	settings domain.Settings,
	prom *metrics.Prometheus,
) *Components {
	return &Components{
		App:      app,
		Logger:   logger,
		Settings: settings,
		Metrics:  prom,
	}
}
