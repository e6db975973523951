package docker

import (
	"errors"
	"testing"

	"github.com/lycosidae/orchestrator/internal/domain"
)

func TestParsePortLabel(t *testing.T) {
	cases := map[string]int{
		"8080":       8080,
		"443":        443,
		"":           domain.DefaultContainerPort,
		"<no value>": domain.DefaultContainerPort,
		"not-a-port": domain.DefaultContainerPort,
		"0":          domain.DefaultContainerPort,
		"70000":      domain.DefaultContainerPort,
	}

	for label, want := range cases {
		if got := parsePortLabel(label); got != want {
			t.Errorf("parsePortLabel(%q) = %d, want %d", label, got, want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	absent := []error{
		errors.New("exit status 1: Error response from daemon: No such container: abc123"),
		errors.New("exit status 1: Error: No such object: abc123"),
		errors.New("exit status 1: Error response from daemon: No such image: demo:v1"),
	}
	for _, err := range absent {
		if !isNotFound(err) {
			t.Errorf("expected %v to be treated as absent", err)
		}
	}

	failures := []error{
		errors.New("exit status 1: Error response from daemon: conflict: unable to delete"),
		errors.New("exit status 125: docker: Error response from daemon: driver failed"),
		errors.New("signal: killed"),
	}
	for _, err := range failures {
		if isNotFound(err) {
			t.Errorf("expected %v to stay an error", err)
		}
	}
}
