package lifecycle

import (
	"fmt"
	"regexp"

	"github.com/lycosidae/orchestrator/internal/domain"
	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// sanitizeName turns a caller-supplied exercise name into an engine-safe
// container name. Empty input is rejected before sanitizing.
func sanitizeName(name string) (string, error) {
	if name == "" {
		return "", domainerrors.ValidationError{Reason: "exercise name cannot be empty"}
	}
	return unsafeNameChars.ReplaceAllString(name, "_"), nil
}

// validateTimeAlive accepts lifetimes in [0, MaxTimeAlive] seconds; 0 means
// the instance is persistent.
func validateTimeAlive(seconds int) error {
	if seconds < 0 || seconds > domain.MaxTimeAlive {
		return domainerrors.ValidationError{
			Reason: fmt.Sprintf("time_alive must be between 0 and %d seconds", domain.MaxTimeAlive),
		}
	}
	return nil
}
