package network

import (
	"fmt"
	"net"
	"sync"

	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
)

// Allocator hands out host ports from a fixed range, first-fit in ascending
// order. The free-check and the reservation happen under one lock so two
// concurrent allocations can never observe the same port as free.
type Allocator struct {
	start int
	end   int

	mu     sync.Mutex
	leased map[int]struct{}

	// probe reports whether a port is bindable on the host. Overridden in tests.
	probe func(port int) bool
}

// NewAllocator creates an allocator over [start, end).
func NewAllocator(start, end int) *Allocator {
	return &Allocator{
		start:  start,
		end:    end,
		leased: make(map[int]struct{}),
		probe:  isPortAvailable,
	}
}

// Allocate reserves the first port in the range that is neither leased nor
// bound on the host.
func (a *Allocator) Allocate() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for port := a.start; port < a.end; port++ {
		if _, taken := a.leased[port]; taken {
			continue
		}
		if !a.probe(port) {
			continue
		}
		a.leased[port] = struct{}{}
		return port, nil
	}
	return 0, domainerrors.PortsExhaustedError{Start: a.start, End: a.end}
}

// Release frees a lease. Releasing a port that is not leased is a no-op.
func (a *Allocator) Release(port int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.leased, port)
}

// Leased reports how many ports are currently reserved.
func (a *Allocator) Leased() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.leased)
}

func isPortAvailable(port int) bool {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	_ = l.Close()
	return true
}
