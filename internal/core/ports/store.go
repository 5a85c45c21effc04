package ports

import "go.trai.ch/linger/internal/core/domain"

// ResultStore persists cache entries across processes.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ResultStore interface {
	// Load returns every persisted entry, most recently used first.
	// A missing store yields no entries and no error.
	Load() ([]domain.StoredEntry, error)

	// Save replaces the persisted entries.
	Save(entries []domain.StoredEntry) error
}
