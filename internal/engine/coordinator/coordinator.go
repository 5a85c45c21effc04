// Package coordinator serializes linter runs process-wide and collapses
// concurrent requests for the same working directory into one run.
package coordinator

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
	"go.trai.ch/zerr"
)

// job is the pending run for one key.
//
// turn is closed when the permit is handed to the job, done when its result
// is published, abandon when a detached job loses its last waiter before its
// turn. result and err are written once, before done is closed.
type job struct {
	req     domain.RunRequest
	turn    chan struct{}
	done    chan struct{}
	abandon chan struct{}

	result domain.RunResult
	err    error

	// The fields below are guarded by Coordinator.mu.
	waiters  int
	granted  bool
	detached bool
}

func newJob(req domain.RunRequest) *job {
	return &job{
		req:     req,
		turn:    make(chan struct{}),
		done:    make(chan struct{}),
		abandon: make(chan struct{}),
		waiters: 1,
	}
}

// Coordinator owns the single execution permit and the per-key backlog.
//
// At most one run executes at a time. The permit passes from a finished run
// straight to the oldest waiting key owner, and is only released when nobody
// is waiting.
type Coordinator struct {
	runner  ports.ProcessRunner
	metrics ports.Metrics
	tracer  ports.Tracer
	clock   clockwork.Clock

	permit atomic.Bool

	mu      sync.Mutex
	pending map[domain.WorkingDirectoryKey]*job
	queue   []*job
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock sets the clock used to stamp RunResult.StartedAt.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Coordinator) {
		c.clock = clock
	}
}

// New creates a Coordinator that executes requests with runner.
func New(runner ports.ProcessRunner, metrics ports.Metrics, tracer ports.Tracer, opts ...Option) *Coordinator {
	c := &Coordinator{
		runner:  runner,
		metrics: metrics,
		tracer:  tracer,
		clock:   clockwork.NewRealClock(),
		pending: make(map[domain.WorkingDirectoryKey]*job),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit blocks until a result for req.Key is available and returns it.
//
// If a run for the same key is already pending, the caller attaches to it and
// receives the same result without running anything. A cancelled ctx makes the
// caller stop waiting; a run that has started is never interrupted.
func (c *Coordinator) Submit(ctx context.Context, req domain.RunRequest) (domain.RunResult, error) {
	c.mu.Lock()

	if j, ok := c.pending[req.Key]; ok {
		j.waiters++
		c.mu.Unlock()
		c.metrics.IncFollowers()
		return c.follow(ctx, j)
	}

	j := newJob(req)
	c.pending[req.Key] = j

	if c.permit.CompareAndSwap(false, true) {
		j.granted = true
		c.mu.Unlock()
		c.execute(ctx, j)
		return j.result, j.err
	}

	c.queue = append(c.queue, j)
	c.metrics.SetBacklog(len(c.queue))
	c.mu.Unlock()

	return c.own(ctx, j)
}

// Busy reports whether a run currently holds the permit.
func (c *Coordinator) Busy() bool {
	return c.permit.Load()
}

// Backlog returns the number of key owners waiting for the permit.
func (c *Coordinator) Backlog() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Waiters returns the number of callers attached to the pending job for key,
// including its owner. It is zero when no job is pending.
func (c *Coordinator) Waiters(key domain.WorkingDirectoryKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if j, ok := c.pending[key]; ok {
		return j.waiters
	}
	return 0
}

// own waits for the permit to be handed to j, then runs it.
func (c *Coordinator) own(ctx context.Context, j *job) (domain.RunResult, error) {
	select {
	case <-j.turn:
		c.execute(ctx, j)
		return j.result, j.err
	case <-ctx.Done():
	}

	c.mu.Lock()
	j.waiters--

	switch {
	case j.granted && j.waiters == 0:
		// The turn raced with cancellation and nobody else wants the result.
		j.err = ctx.Err()
		c.removeLocked(j)
		close(j.done)
		c.handOffLocked()
		c.mu.Unlock()
	case j.granted:
		c.mu.Unlock()
		go c.execute(ctx, j)
	case j.waiters == 0:
		c.dequeueLocked(j)
		c.mu.Unlock()
	default:
		// Followers still need the result: keep the job queued without an owner.
		j.detached = true
		c.mu.Unlock()
		go func() {
			select {
			case <-j.turn:
				c.execute(ctx, j)
			case <-j.abandon:
			}
		}()
	}

	return domain.RunResult{}, ctx.Err()
}

// follow waits for the owner of j to publish its result.
func (c *Coordinator) follow(ctx context.Context, j *job) (domain.RunResult, error) {
	select {
	case <-j.done:
		return j.result, j.err
	case <-ctx.Done():
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-j.done:
		return j.result, j.err
	default:
	}

	j.waiters--
	if j.detached && j.waiters == 0 && !j.granted {
		c.dequeueLocked(j)
		close(j.abandon)
	}
	return domain.RunResult{}, ctx.Err()
}

// execute runs j while holding the permit. The deferred completion publishes
// the result and passes the permit on, also when the runner panics.
func (c *Coordinator) execute(ctx context.Context, j *job) {
	ctx = context.WithoutCancel(ctx)

	ctx, span := c.tracer.Start(ctx, "coordinator.run",
		ports.WithAttribute("linger.key", j.req.Key.String()),
		ports.WithAttribute("linger.run_id", uuid.NewString()),
	)
	start := c.clock.Now()

	defer func() {
		if r := recover(); r != nil {
			j.result = domain.RunResult{ExitCode: -1}
			j.err = zerr.With(zerr.Wrap(domain.ErrRunnerPanicked, "run aborted"), "panic", fmt.Sprint(r))
		}
		j.result.StartedAt = start

		c.metrics.ObserveRun(j.result.ExitCode, c.clock.Since(start))
		span.SetAttribute("linger.exit_code", j.result.ExitCode)
		if j.err != nil {
			span.RecordError(j.err)
		}
		span.End()

		c.complete(j)
	}()

	j.result, j.err = c.runner.Run(ctx, j.req)
}

func (c *Coordinator) complete(j *job) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(j)
	close(j.done)
	c.handOffLocked()
}

// handOffLocked gives the permit to the oldest queued job, or releases it.
func (c *Coordinator) handOffLocked() {
	if len(c.queue) == 0 {
		c.permit.Store(false)
		c.metrics.SetBacklog(0)
		return
	}

	next := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]
	next.granted = true
	close(next.turn)
	c.metrics.SetBacklog(len(c.queue))
}

func (c *Coordinator) dequeueLocked(j *job) {
	if i := slices.Index(c.queue, j); i >= 0 {
		c.queue = slices.Delete(c.queue, i, i+1)
	}
	c.removeLocked(j)
	c.metrics.SetBacklog(len(c.queue))
}

func (c *Coordinator) removeLocked(j *job) {
	if c.pending[j.req.Key] == j {
		delete(c.pending, j.req.Key)
	}
}
