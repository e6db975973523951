package expiry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lycosidae/orchestrator/internal/impls"
)

const (
	stateScheduled int32 = iota
	stateFired
	stateCancelled
)

type entry struct {
	state int32
	timer *time.Timer
}

// Scheduler keeps one teardown timer per container id. The scheduled ->
// fired/cancelled transition is a single compare-and-swap per entry, so the
// firing path and a racing Cancel can never both win: onFire runs at most
// once and never after a successful Cancel.
type Scheduler struct {
	mu      sync.Mutex
	entries map[string]*entry
	logger  impls.Logger
}

func NewScheduler(logger impls.Logger) *Scheduler {
	return &Scheduler{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Schedule arms a timer that invokes onFire after ttl. A ttl <= 0 arms
// nothing: the instance stays up until an explicit shutdown.
func (s *Scheduler) Schedule(containerID string, ttl time.Duration, onFire func(containerID string)) {
	if ttl <= 0 {
		s.logger.Info("container %s started without auto-shutdown", containerID)
		return
	}

	e := &entry{state: stateScheduled}
	e.timer = time.AfterFunc(ttl, func() {
		if !atomic.CompareAndSwapInt32(&e.state, stateScheduled, stateFired) {
			return
		}
		s.drop(containerID, e)
		onFire(containerID)
	})

	s.mu.Lock()
	if old, ok := s.entries[containerID]; ok {
		// Re-scheduling the same id disarms the previous timer.
		if atomic.CompareAndSwapInt32(&old.state, stateScheduled, stateCancelled) {
			old.timer.Stop()
		}
	}
	s.entries[containerID] = e
	s.mu.Unlock()

	s.logger.Info("container %s scheduled to expire in %s", containerID, ttl)
}

// Cancel disarms the timer for containerID. A true result guarantees onFire
// will never run. Unknown, fired, or already cancelled ids return false.
func (s *Scheduler) Cancel(containerID string) bool {
	s.mu.Lock()
	e, ok := s.entries[containerID]
	s.mu.Unlock()
	if !ok {
		return false
	}

	if !atomic.CompareAndSwapInt32(&e.state, stateScheduled, stateCancelled) {
		return false
	}
	e.timer.Stop()
	s.drop(containerID, e)
	return true
}

// Pending reports how many timers are currently armed.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// drop removes the entry unless the id was re-scheduled in the meantime.
func (s *Scheduler) drop(containerID string, e *entry) {
	s.mu.Lock()
	if s.entries[containerID] == e {
		delete(s.entries, containerID)
	}
	s.mu.Unlock()
}
