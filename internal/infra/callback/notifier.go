package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/lycosidae/orchestrator/internal/domain"
	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
	"github.com/lycosidae/orchestrator/internal/impls"
)

// Notifier posts expiry notices to caller-supplied callback URLs. Delivery is
// best-effort: the teardown that triggered the notice already succeeded, so
// failures are logged and swallowed by the caller.
type Notifier struct {
	http   *retryablehttp.Client
	logger impls.Logger
}

func NewNotifier(logger impls.Logger) *Notifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &Notifier{http: client, logger: logger}
}

func (n *Notifier) NotifyExpired(ctx context.Context, callbackURL, containerID string) error {
	notice := domain.ExpiryNotice{ContainerID: containerID, Status: "expired"}
	payload, err := json.Marshal(notice)
	if err != nil {
		return domainerrors.NotificationError{URL: callbackURL, Err: err}
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, callbackURL, bytes.NewReader(payload))
	if err != nil {
		return domainerrors.NotificationError{URL: callbackURL, Err: err}
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return domainerrors.NotificationError{URL: callbackURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domainerrors.NotificationError{
			URL: callbackURL,
			Err: fmt.Errorf("callback returned status %d", resp.StatusCode),
		}
	}

	n.logger.Info("expiry notice for %s delivered to %s", containerID, callbackURL)
	return nil
}
