package network

import (
	"errors"
	"sync"
	"testing"

	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
)

func newTestAllocator(start, end int) *Allocator {
	a := NewAllocator(start, end)
	a.probe = func(int) bool { return true }
	return a
}

func TestAllocateFirstFit(t *testing.T) {
	a := newTestAllocator(50000, 50010)

	port, err := a.Allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != 50000 {
		t.Fatalf("expected first-fit port 50000, got %d", port)
	}

	port, err = a.Allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != 50001 {
		t.Fatalf("expected next port 50001, got %d", port)
	}
}

func TestAllocateExhaustsRange(t *testing.T) {
	a := newTestAllocator(50000, 50003)

	seen := make(map[int]struct{})
	for i := 0; i < 3; i++ {
		port, err := a.Allocate()
		if err != nil {
			t.Fatalf("allocation %d failed: %v", i, err)
		}
		if _, dup := seen[port]; dup {
			t.Fatalf("port %d allocated twice", port)
		}
		seen[port] = struct{}{}
	}

	_, err := a.Allocate()
	var exhausted domainerrors.PortsExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected PortsExhaustedError, got %v", err)
	}
}

func TestReleaseMakesPortReusable(t *testing.T) {
	a := newTestAllocator(50000, 50001)

	port, err := a.Allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := a.Allocate(); err == nil {
		t.Fatal("expected exhaustion before release")
	}

	a.Release(port)
	again, err := a.Allocate()
	if err != nil {
		t.Fatalf("unexpected error after release: %v", err)
	}
	if again != port {
		t.Fatalf("expected released port %d, got %d", port, again)
	}
}

func TestAllocateSkipsBoundPorts(t *testing.T) {
	a := NewAllocator(50000, 50010)
	a.probe = func(port int) bool { return port != 50000 }

	port, err := a.Allocate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if port != 50001 {
		t.Fatalf("expected host-bound 50000 to be skipped, got %d", port)
	}
}

func TestConcurrentAllocationsAreDistinct(t *testing.T) {
	const n = 50
	a := newTestAllocator(50000, 50000+n)

	var mu sync.Mutex
	seen := make(map[int]struct{})

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			port, err := a.Allocate()
			if err != nil {
				t.Errorf("allocation failed: %v", err)
				return
			}
			mu.Lock()
			if _, dup := seen[port]; dup {
				t.Errorf("port %d allocated twice", port)
			}
			seen[port] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if a.Leased() != n {
		t.Fatalf("expected %d leases, got %d", n, a.Leased())
	}
}
