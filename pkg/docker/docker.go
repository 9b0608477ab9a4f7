package docker

import (
	"context"
	"fmt"

	"github.com/cuemby/n8nup/pkg/shell"
)

// CLI wraps the docker command line client for the two operations the
// upgrade needs: pulling an image and executing a command inside a
// running container.
type CLI struct {
	runner shell.Runner
}

// NewCLI creates a docker CLI wrapper backed by runner.
func NewCLI(runner shell.Runner) *CLI {
	return &CLI{runner: runner}
}

// Pull downloads imageRef through the docker CLI. The registry's own
// progress output stays on the child's stderr and is surfaced only on
// failure.
func (c *CLI) Pull(ctx context.Context, imageRef string) error {
	if _, err := c.runner.Run(ctx, "docker", "pull", imageRef); err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageRef, err)
	}
	return nil
}

// Exec runs argv inside the container identified by containerID and
// returns its trimmed stdout.
func (c *CLI) Exec(ctx context.Context, containerID string, argv ...string) (string, error) {
	full := append([]string{"docker", "exec", containerID}, argv...)
	out, err := c.runner.Run(ctx, full...)
	if err != nil {
		return "", fmt.Errorf("failed to exec in container %s: %w", containerID, err)
	}
	return out, nil
}
