// Package metrics exposes coordination and cache statistics to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/linger/internal/core/ports"
)

const namespace = "linger"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implements ports.Metrics with its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	runs         *prometheus.CounterVec
	runDuration  prometheus.Histogram
	followers    prometheus.Counter
	backlog      prometheus.Gauge
	cacheLookups *prometheus.CounterVec
	dropped      prometheus.Counter
}

// NewPrometheus creates the collectors and registers them on a fresh registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "runs",
				Name:      "total",
				Help:      "Linter processes executed, by exit code",
			},
			[]string{"exit_code"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "runs",
				Name:      "duration_seconds",
				Help:      "Wall time of linter processes",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
			},
		),
		followers: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "coordinator",
				Name:      "followers_total",
				Help:      "Requests that joined a pending run instead of starting one",
			},
		),
		backlog: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "coordinator",
				Name:      "backlog",
				Help:      "Working directories waiting for the execution permit",
			},
		),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "lookups_total",
				Help:      "Result cache lookups, by outcome",
			},
			[]string{"outcome"},
		),
		dropped: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reconcile",
				Name:      "dropped_issues_total",
				Help:      "Issues that could not be relocated in the current buffer",
			},
		),
	}
}

// ObserveRun records one physical tool execution.
func (p *Prometheus) ObserveRun(exitCode int, duration time.Duration) {
	p.runs.WithLabelValues(strconv.Itoa(exitCode)).Inc()
	p.runDuration.Observe(duration.Seconds())
}

// IncFollowers records a request that joined a pending job.
func (p *Prometheus) IncFollowers() {
	p.followers.Inc()
}

// SetBacklog records the current number of waiting key owners.
func (p *Prometheus) SetBacklog(n int) {
	p.backlog.Set(float64(n))
}

// IncCacheLookup records the outcome of a cache lookup.
func (p *Prometheus) IncCacheLookup(outcome ports.CacheOutcome) {
	p.cacheLookups.WithLabelValues(string(outcome)).Inc()
}

// AddDroppedIssues records issues that could not be relocated.
func (p *Prometheus) AddDroppedIssues(n int) {
	if n > 0 {
		p.dropped.Add(float64(n))
	}
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
