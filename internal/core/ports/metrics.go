package ports

import "time"

// CacheOutcome classifies a result cache lookup.
type CacheOutcome string

const (
	// CacheHit means a fresh entry was reused.
	CacheHit CacheOutcome = "hit"
	// CacheStale means an outdated entry was found.
	CacheStale CacheOutcome = "stale"
	// CacheMiss means no entry existed.
	CacheMiss CacheOutcome = "miss"
)

// Metrics records coordination and cache statistics.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveRun records one physical tool execution.
	ObserveRun(exitCode int, duration time.Duration)
	// IncFollowers records a request that joined an already pending job.
	IncFollowers()
	// SetBacklog records the number of key-owners waiting for the permit.
	SetBacklog(n int)
	// IncCacheLookup records the outcome of a cache lookup.
	IncCacheLookup(outcome CacheOutcome)
	// AddDroppedIssues records issues that could not be relocated in the buffer.
	AddDroppedIssues(n int)
}
