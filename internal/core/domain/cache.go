package domain

import "time"

// CacheEntry is the last successful analysis of a working directory.
// Entries are replaced, never mutated.
type CacheEntry struct {
	ProducedAt time.Time    `msgpack:"produced_at"`
	Issues     []Issue      `msgpack:"issues"`
	Linters    []LinterInfo `msgpack:"linters"`
}

// FreshFor reports whether the entry is newer than both freshness signals.
// A signal equal to ProducedAt still counts as fresh.
func (e *CacheEntry) FreshFor(fileModTime, configModTime time.Time) bool {
	return !fileModTime.After(e.ProducedAt) && !configModTime.After(e.ProducedAt)
}

// StoredEntry pairs a cache entry with its key for persistence.
type StoredEntry struct {
	Key   WorkingDirectoryKey `msgpack:"key"`
	Entry CacheEntry          `msgpack:"entry"`
}

// AnalysisSource tells where the issues of an analysis came from.
type AnalysisSource string

const (
	// SourceFresh means the tool was run for this request (or a request it joined).
	SourceFresh AnalysisSource = "fresh"
	// SourceCached means a fresh cache entry was reused.
	SourceCached AnalysisSource = "cached"
	// SourceStale means an outdated cache entry was served as a fallback.
	SourceStale AnalysisSource = "stale"
)

// Analysis is the result handed back to the host for one document.
type Analysis struct {
	Source     AnalysisSource
	ProducedAt time.Time
	Placements []Placement
	Linters    []LinterInfo
	// Dropped counts issues for this file that could not be relocated in the buffer.
	Dropped int
	// Stopped is set when the buffer drifted too far from the report to place
	// the remaining issues.
	Stopped bool
}
