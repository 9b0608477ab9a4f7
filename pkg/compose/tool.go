package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/cuemby/n8nup/pkg/shell"
	"github.com/cuemby/n8nup/pkg/types"
)

// Tool issues compose subcommands against one probed environment. Every
// invocation pins the compose file explicitly so the run operates on the
// file the probe (or the operator) chose, regardless of working directory.
type Tool struct {
	env    *types.Environment
	runner shell.Runner
}

// NewTool creates a compose tool bound to env.
func NewTool(env *types.Environment, runner shell.Runner) *Tool {
	return &Tool{env: env, runner: runner}
}

// argv assembles the full command line for a compose subcommand.
func (t *Tool) argv(sub ...string) []string {
	argv := append([]string{}, t.env.ComposeArgv...)
	argv = append(argv, "-f", t.env.ComposeFile)
	return append(argv, sub...)
}

// ContainerID returns the container handle for service, or "" when the
// service has no running container. Listing failures also report "":
// "not running" is a valid observation, not an error.
func (t *Tool) ContainerID(ctx context.Context, service string) string {
	out, err := t.runner.Run(ctx, t.argv("ps", "-q", service)...)
	if err != nil {
		return ""
	}
	if i := strings.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return strings.TrimSpace(out)
}

// Recreate stops, removes, and restarts service's container without
// touching its dependencies.
func (t *Tool) Recreate(ctx context.Context, service string) error {
	if _, err := t.runner.Run(ctx, t.argv("up", "-d", "--no-deps", "--force-recreate", service)...); err != nil {
		return fmt.Errorf("failed to recreate service %s: %w", service, err)
	}
	return nil
}

// RecreateWait re-issues the recreate with the blocking --wait flag added.
// Callers should only reach for it when the environment reports wait
// support.
func (t *Tool) RecreateWait(ctx context.Context, service string) error {
	if _, err := t.runner.Run(ctx, t.argv("up", "-d", "--no-deps", "--force-recreate", "--wait", service)...); err != nil {
		return fmt.Errorf("failed to recreate service %s with --wait: %w", service, err)
	}
	return nil
}
