package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lycosidae/orchestrator/internal/domain"
	"github.com/lycosidae/orchestrator/internal/impls"
)

// expireTeardownTimeout bounds the engine calls made from a timer firing,
// which carries no request context of its own.
const expireTeardownTimeout = 2 * time.Minute

// Service orchestrates the create -> run -> expire/stop -> remove lifecycle
// of exercise containers. It owns the in-memory registry tying container ids
// to their port leases and expiry timers; the engine remains the authority on
// which containers actually exist.
type Service struct {
	runtime  impls.ContainerRuntime
	ports    impls.PortAllocator
	timers   impls.ExpiryScheduler
	notifier impls.ExpiryNotifier
	logger   impls.Logger
	publicIP string

	mu        sync.Mutex
	instances map[string]*domain.Instance
}

func NewService(
	runtime impls.ContainerRuntime,
	ports impls.PortAllocator,
	timers impls.ExpiryScheduler,
	notifier impls.ExpiryNotifier,
	logger impls.Logger,
	publicIP string,
) *Service {
	return &Service{
		runtime:   runtime,
		ports:     ports,
		timers:    timers,
		notifier:  notifier,
		logger:    logger,
		publicIP:  publicIP,
		instances: make(map[string]*domain.Instance),
	}
}

type StartInput struct {
	Image        string
	ExerciseName string
	TimeAlive    int
	CallbackURL  string
}

type StartResult struct {
	ContainerID string
	HostPort    int
	TimeAlive   int
	ServiceURL  string
}

type DeleteResult struct {
	ContainerID string
	ImageID     string

	// ImageRemovalErr reports a failed best-effort image removal. The
	// container itself is already gone, so this never fails the delete.
	ImageRemovalErr error
}

// Start creates a new exercise container: pull the image, reserve a host
// port, run detached, and arm the expiry timer when a lifetime is requested.
func (s *Service) Start(ctx context.Context, in StartInput) (*StartResult, error) {
	name, err := sanitizeName(in.ExerciseName)
	if err != nil {
		return nil, err
	}
	if err := validateTimeAlive(in.TimeAlive); err != nil {
		return nil, err
	}

	if err := s.runtime.Pull(ctx, in.Image); err != nil {
		return nil, err
	}

	containerPort := s.runtime.PortLabel(ctx, in.Image)

	hostPort, err := s.ports.Allocate()
	if err != nil {
		return nil, err
	}

	containerID, err := s.runtime.Run(ctx, name, in.Image, hostPort, containerPort)
	if err != nil {
		// The lease must not outlive the failed run.
		s.ports.Release(hostPort)
		return nil, err
	}

	now := time.Now()
	inst := &domain.Instance{
		ID:            containerID,
		Name:          name,
		Image:         in.Image,
		HostPort:      hostPort,
		ContainerPort: containerPort,
		TimeAlive:     in.TimeAlive,
		CallbackURL:   in.CallbackURL,
		CreatedAt:     now,
		State:         domain.StateRunning,
	}
	if in.TimeAlive > 0 {
		inst.ExpireAt = now.Add(time.Duration(in.TimeAlive) * time.Second)
	}

	s.mu.Lock()
	s.instances[containerID] = inst
	s.mu.Unlock()

	s.timers.Schedule(containerID, time.Duration(in.TimeAlive)*time.Second, s.expire)

	s.logger.Info("container %s (%s) started on port %d, time_alive=%ds", containerID, name, hostPort, in.TimeAlive)

	return &StartResult{
		ContainerID: containerID,
		HostPort:    hostPort,
		TimeAlive:   in.TimeAlive,
		ServiceURL:  fmt.Sprintf("http://%s:%d", s.publicIP, hostPort),
	}, nil
}

// Shutdown stops and removes a container. The expiry timer is cancelled
// first so the automatic path can no longer race this one. Ids the engine no
// longer knows succeed, so duplicate or late calls are safe.
func (s *Service) Shutdown(ctx context.Context, containerID string) error {
	s.timers.Cancel(containerID)

	if err := s.runtime.Stop(ctx, containerID); err != nil {
		return err
	}
	if err := s.runtime.Remove(ctx, containerID); err != nil {
		return err
	}

	s.finalize(containerID)
	s.logger.Info("container %s shut down", containerID)
	return nil
}

// Delete is Shutdown plus best-effort removal of the backing image. The
// image id is captured before the container is removed, since the container
// reference is unresolvable afterwards.
func (s *Service) Delete(ctx context.Context, containerID string) (*DeleteResult, error) {
	s.timers.Cancel(containerID)

	imageID, err := s.runtime.ImageID(ctx, containerID)
	if err != nil {
		// Already-gone container: the delete still succeeds, there is
		// just no image left to resolve.
		s.logger.Warn("image id of %s unresolvable: %v", containerID, err)
		imageID = ""
	}

	if err := s.runtime.Stop(ctx, containerID); err != nil {
		return nil, err
	}
	if err := s.runtime.Remove(ctx, containerID); err != nil {
		return nil, err
	}

	s.finalize(containerID)

	result := &DeleteResult{ContainerID: containerID, ImageID: imageID}
	if imageID != "" {
		if err := s.runtime.RemoveImage(ctx, imageID); err != nil {
			// Other instances may share the image. The container is
			// gone, so this stays non-fatal.
			s.logger.Warn("image %s not removed: %v", imageID, err)
			result.ImageRemovalErr = err
		}
	}

	s.logger.Info("container %s deleted", containerID)
	return result, nil
}

// Status reports whether the container is running. Unknown ids report false
// rather than an error, so external reconciliation can prune freely.
func (s *Service) Status(ctx context.Context, containerID string) (bool, error) {
	return s.runtime.IsRunning(ctx, containerID)
}

// expire is the timer-fire path: teardown first, notification second. The
// scheduler's fire/cancel guard already ensures it runs at most once per
// scheduled instance.
func (s *Service) expire(containerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), expireTeardownTimeout)
	defer cancel()

	s.logger.Info("container %s expired, tearing down", containerID)

	if err := s.runtime.Stop(ctx, containerID); err != nil {
		s.logger.Error("expiry stop of %s failed: %v", containerID, err)
		return
	}
	if err := s.runtime.Remove(ctx, containerID); err != nil {
		s.logger.Error("expiry remove of %s failed: %v", containerID, err)
		return
	}

	callbackURL := s.callbackURL(containerID)
	s.finalize(containerID)

	if callbackURL != "" {
		if err := s.notifier.NotifyExpired(ctx, callbackURL, containerID); err != nil {
			// Teardown already succeeded; the notice is best-effort.
			s.logger.Warn("%v", err)
		}
	}
}

// finalize releases the port lease and drops the registry entry. Safe to
// call for ids that were never registered or were already finalized.
func (s *Service) finalize(containerID string) {
	s.mu.Lock()
	inst, ok := s.instances[containerID]
	if ok {
		inst.State = domain.StateDeleted
		delete(s.instances, containerID)
	}
	s.mu.Unlock()

	if ok {
		s.ports.Release(inst.HostPort)
	}
}

func (s *Service) callbackURL(containerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inst, ok := s.instances[containerID]; ok {
		return inst.CallbackURL
	}
	return ""
}

// Active reports how many instances the registry currently tracks.
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}
