package lifecycle

import (
	"context"
	"sync"
	"time"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type fakeRuntime struct {
	mu sync.Mutex

	pullErr        error
	portLabel      int
	runID          string
	runErr         error
	running        bool
	imageID        string
	imageIDErr     error
	removeImageErr error

	pulls   int
	runs    int
	stops   int
	removes int
	rmis    int

	lastName          string
	lastHostPort      int
	lastContainerPort int
}

func (f *fakeRuntime) Pull(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulls++
	return f.pullErr
}

func (f *fakeRuntime) PortLabel(context.Context, string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.portLabel == 0 {
		return 80
	}
	return f.portLabel
}

func (f *fakeRuntime) Run(_ context.Context, name, _ string, hostPort, containerPort int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.runErr != nil {
		return "", f.runErr
	}
	f.runs++
	f.lastName = name
	f.lastHostPort = hostPort
	f.lastContainerPort = containerPort
	f.running = true
	return f.runID, nil
}

func (f *fakeRuntime) IsRunning(context.Context, string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running, nil
}

func (f *fakeRuntime) Stop(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.running = false
	return nil
}

func (f *fakeRuntime) Remove(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	return nil
}

func (f *fakeRuntime) ImageID(context.Context, string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.imageID, f.imageIDErr
}

func (f *fakeRuntime) RemoveImage(context.Context, string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rmis++
	return f.removeImageErr
}

func (f *fakeRuntime) counts() (stops, removes, rmis int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops, f.removes, f.rmis
}

type fakePorts struct {
	mu       sync.Mutex
	next     int
	err      error
	released []int
}

func newFakePorts(base int) *fakePorts {
	return &fakePorts{next: base}
}

func (f *fakePorts) Allocate() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	port := f.next
	f.next++
	return port, nil
}

func (f *fakePorts) Release(port int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released = append(f.released, port)
}

func (f *fakePorts) releasedPorts() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.released...)
}

// fakeScheduler records schedule/cancel calls and lets tests fire timers
// deterministically.
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[string]func(string)
	ttls      map[string]time.Duration
	cancelled []string
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{
		scheduled: make(map[string]func(string)),
		ttls:      make(map[string]time.Duration),
	}
}

func (f *fakeScheduler) Schedule(id string, ttl time.Duration, onFire func(string)) {
	if ttl <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled[id] = onFire
	f.ttls[id] = ttl
}

func (f *fakeScheduler) Cancel(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
	if _, ok := f.scheduled[id]; ok {
		delete(f.scheduled, id)
		return true
	}
	return false
}

func (f *fakeScheduler) fire(id string) bool {
	f.mu.Lock()
	onFire, ok := f.scheduled[id]
	delete(f.scheduled, id)
	f.mu.Unlock()
	if ok {
		onFire(id)
	}
	return ok
}

func (f *fakeScheduler) pending(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.scheduled[id]
	return ok
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	urls  []string
}

func (f *fakeNotifier) NotifyExpired(_ context.Context, callbackURL, containerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, containerID)
	f.urls = append(f.urls, callbackURL)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
