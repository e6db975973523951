package impls

import "context"

// ContainerRuntime drives the local container engine. Every call issues a
// command to the engine and blocks until it finishes or its deadline expires.
type ContainerRuntime interface {
	// Pull downloads or refreshes the image in the local cache.
	Pull(ctx context.Context, image string) error

	// PortLabel reports the internal port declared by the image. A missing
	// or malformed label degrades to the default port, never to an error.
	PortLabel(ctx context.Context, image string) int

	// Run starts a detached container named name, mapping hostPort to
	// containerPort, and returns the engine-assigned container id.
	Run(ctx context.Context, name, image string, hostPort, containerPort int) (string, error)

	// IsRunning reports whether the container is currently running.
	// An id the engine no longer knows about reports false, not an error.
	IsRunning(ctx context.Context, containerID string) (bool, error)

	// Stop stops the container. Stopping an already-stopped or absent
	// container is not an error.
	Stop(ctx context.Context, containerID string) error

	// Remove removes the container. Removing an absent container is not
	// an error.
	Remove(ctx context.Context, containerID string) error

	// ImageID resolves the id of the image backing the container. Must be
	// called before Remove: the container id is unresolvable afterwards.
	ImageID(ctx context.Context, containerID string) (string, error)

	// RemoveImage force-removes the image. Best-effort: it fails when
	// other containers still use the image.
	RemoveImage(ctx context.Context, imageID string) error
}
