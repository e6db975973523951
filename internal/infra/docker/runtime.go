package docker

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/lycosidae/orchestrator/internal/domain"
	domainerrors "github.com/lycosidae/orchestrator/internal/domain/errors"
	"github.com/lycosidae/orchestrator/internal/impls"
)

// noValue is what docker inspect prints for an absent label.
const noValue = "<no value>"

// Runtime implements impls.ContainerRuntime by shelling out to the docker
// CLI. Every command runs under a deadline so a hung daemon cannot block a
// request forever.
type Runtime struct {
	binary      string
	pullTimeout time.Duration
	cmdTimeout  time.Duration
	logger      impls.Logger
}

func NewRuntime(binary string, pullTimeout, cmdTimeout time.Duration, logger impls.Logger) *Runtime {
	return &Runtime{
		binary:      binary,
		pullTimeout: pullTimeout,
		cmdTimeout:  cmdTimeout,
		logger:      logger,
	}
}

func (r *Runtime) Pull(ctx context.Context, image string) error {
	if _, err := r.command(ctx, r.pullTimeout, "pull", image); err != nil {
		return domainerrors.ImageNotFoundError{Image: image, Err: err}
	}
	return nil
}

func (r *Runtime) PortLabel(ctx context.Context, image string) int {
	format := fmt.Sprintf(`{{index .Config.Labels %q}}`, domain.PortLabel)
	out, err := r.command(ctx, r.cmdTimeout, "inspect", "--format", format, image)
	if err != nil {
		r.logger.Warn("inspect port label of %s failed: %v", image, err)
		return domain.DefaultContainerPort
	}
	return parsePortLabel(out)
}

// parsePortLabel degrades absent or malformed label values to the default
// port instead of failing the caller.
func parsePortLabel(out string) int {
	if out == "" || out == noValue {
		return domain.DefaultContainerPort
	}
	port, err := strconv.Atoi(out)
	if err != nil || port < 1 || port > 65535 {
		return domain.DefaultContainerPort
	}
	return port
}

func (r *Runtime) Run(ctx context.Context, name, image string, hostPort, containerPort int) (string, error) {
	out, err := r.command(ctx, r.cmdTimeout,
		"run", "-d",
		"--name", name,
		"--restart", "unless-stopped",
		"-p", fmt.Sprintf("%d:%d", hostPort, containerPort),
		image,
	)
	if err != nil {
		return "", domainerrors.RuntimeError{Op: "run", Err: err}
	}
	return out, nil
}

func (r *Runtime) IsRunning(ctx context.Context, containerID string) (bool, error) {
	out, err := r.command(ctx, r.cmdTimeout, "inspect", "-f", "{{.State.Running}}", containerID)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, domainerrors.RuntimeError{Op: "inspect", Err: err}
	}
	return out == "true", nil
}

func (r *Runtime) Stop(ctx context.Context, containerID string) error {
	if _, err := r.command(ctx, r.cmdTimeout, "stop", containerID); err != nil {
		if isNotFound(err) {
			return nil
		}
		return domainerrors.RuntimeError{Op: "stop", Err: err}
	}
	return nil
}

func (r *Runtime) Remove(ctx context.Context, containerID string) error {
	if _, err := r.command(ctx, r.cmdTimeout, "rm", containerID); err != nil {
		if isNotFound(err) {
			return nil
		}
		return domainerrors.RuntimeError{Op: "rm", Err: err}
	}
	return nil
}

func (r *Runtime) ImageID(ctx context.Context, containerID string) (string, error) {
	out, err := r.command(ctx, r.cmdTimeout, "inspect", "-f", "{{.Image}}", containerID)
	if err != nil {
		return "", domainerrors.RuntimeError{Op: "inspect", Err: err}
	}
	return out, nil
}

func (r *Runtime) RemoveImage(ctx context.Context, imageID string) error {
	if _, err := r.command(ctx, r.cmdTimeout, "rmi", "-f", imageID); err != nil {
		return domainerrors.RuntimeError{Op: "rmi", Err: err}
	}
	return nil
}

// command runs the docker CLI with a deadline and returns trimmed combined
// output. On failure the output is folded into the error so engine
// diagnostics reach the caller.
func (r *Runtime) command(ctx context.Context, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, args...)
	output, err := cmd.CombinedOutput()
	out := strings.TrimSpace(string(output))
	if err != nil {
		if out != "" {
			err = fmt.Errorf("%w: %s", err, out)
		}
		return "", err
	}
	return out, nil
}

// isNotFound matches the daemon diagnostics for ids it no longer knows,
// so repeated teardown calls stay idempotent.
func isNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such container") ||
		strings.Contains(msg, "no such object") ||
		strings.Contains(msg, "no such image")
}
