package impls

import "context"

// ExpiryNotifier delivers the expiry notice to the caller-supplied callback
// URL. Best-effort: delivery failures are logged by the implementation and
// never escalated.
type ExpiryNotifier interface {
	NotifyExpired(ctx context.Context, callbackURL, containerID string) error
}
