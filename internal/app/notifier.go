package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/linger/internal/core/domain"
	"go.trai.ch/linger/internal/core/ports"
)

// Notifier reports tool failures to the user, at most once per key per interval.
type Notifier struct {
	logger   ports.Logger
	clock    clockwork.Clock
	interval time.Duration

	mu    sync.Mutex
	state map[domain.WorkingDirectoryKey]*notifyState
}

type notifyState struct {
	last       time.Time
	suppressed int
}

// NewNotifier creates a Notifier. A non-positive interval disables rate limiting.
func NewNotifier(logger ports.Logger, clock clockwork.Clock, interval time.Duration) *Notifier {
	return &Notifier{
		logger:   logger,
		clock:    clock,
		interval: interval,
		state:    make(map[domain.WorkingDirectoryKey]*notifyState),
	}
}

// Notify reports err for key unless a report for key was emitted within the
// interval. It returns whether the report was emitted. Suppressed reports are
// counted and mentioned by the next emitted one.
func (n *Notifier) Notify(key domain.WorkingDirectoryKey, err error) bool {
	n.mu.Lock()
	now := n.clock.Now()
	st, ok := n.state[key]
	if ok && n.interval > 0 && now.Sub(st.last) < n.interval {
		st.suppressed++
		n.mu.Unlock()
		return false
	}
	suppressed := 0
	if ok {
		suppressed = st.suppressed
	}
	n.state[key] = &notifyState{last: now}
	n.mu.Unlock()

	msg := "golangci-lint failed in " + key.String()
	if suppressed > 0 {
		msg += fmt.Sprintf(" (%d similar failures suppressed)", suppressed)
	}
	n.logger.Warn(msg)
	n.logger.Error(err)
	return true
}

// Reset forgets the failure history of key after a successful run.
func (n *Notifier) Reset(key domain.WorkingDirectoryKey) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.state, key)
}
