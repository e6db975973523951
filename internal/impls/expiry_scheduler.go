package impls

import "time"

// ExpiryScheduler arms one cancellable teardown timer per container id.
type ExpiryScheduler interface {
	// Schedule arms a timer that invokes onFire after ttl. A ttl <= 0
	// schedules nothing: the instance is persistent.
	Schedule(containerID string, ttl time.Duration, onFire func(containerID string))

	// Cancel disarms the timer. Once Cancel returns true, onFire is
	// guaranteed never to run. Cancelling an unknown or already fired
	// timer is a no-op returning false.
	Cancel(containerID string) bool
}
