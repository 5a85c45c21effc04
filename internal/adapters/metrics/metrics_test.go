package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/linger/internal/adapters/metrics"
	"go.trai.ch/linger/internal/core/ports"
)

func TestPrometheus_Collects(t *testing.T) {
	m := metrics.NewPrometheus()

	m.ObserveRun(1, 2*time.Second)
	m.ObserveRun(1, time.Second)
	m.ObserveRun(2, time.Second)
	m.IncFollowers()
	m.IncFollowers()
	m.SetBacklog(3)
	m.IncCacheLookup(ports.CacheHit)
	m.IncCacheLookup(ports.CacheMiss)
	m.IncCacheLookup(ports.CacheMiss)
	m.AddDroppedIssues(4)
	m.AddDroppedIssues(0)

	expected := `
# HELP linger_cache_lookups_total Result cache lookups, by outcome
# TYPE linger_cache_lookups_total counter
linger_cache_lookups_total{outcome="hit"} 1
linger_cache_lookups_total{outcome="miss"} 2
# HELP linger_coordinator_backlog Working directories waiting for the execution permit
# TYPE linger_coordinator_backlog gauge
linger_coordinator_backlog 3
# HELP linger_coordinator_followers_total Requests that joined a pending run instead of starting one
# TYPE linger_coordinator_followers_total counter
linger_coordinator_followers_total 2
# HELP linger_reconcile_dropped_issues_total Issues that could not be relocated in the current buffer
# TYPE linger_reconcile_dropped_issues_total counter
linger_reconcile_dropped_issues_total 4
# HELP linger_runs_total Linter processes executed, by exit code
# TYPE linger_runs_total counter
linger_runs_total{exit_code="1"} 2
linger_runs_total{exit_code="2"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"linger_cache_lookups_total",
		"linger_coordinator_backlog",
		"linger_coordinator_followers_total",
		"linger_reconcile_dropped_issues_total",
		"linger_runs_total",
	)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "linger_runs_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.NewPrometheus()
	m.IncFollowers()

	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL) //nolint:noctx // test server
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "linger_coordinator_followers_total 1")
}
