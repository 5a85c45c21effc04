package ports

import (
	"time"

	"go.trai.ch/linger/internal/core/domain"
)

// ConfigLoader defines the interface for loading linger and tool configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the linger configuration visible from cwd, falling back to defaults.
	Load(cwd string) (domain.Settings, error)

	// ToolConfigModTime returns the modification time of the nearest file named
	// in names, searching workDir and its parents. It returns the zero time when none exists.
	ToolConfigModTime(workDir string, names []string) (time.Time, error)
}
