package shell

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/cuemby/n8nup/pkg/log"
)

// Runner executes an external command and returns its captured output.
// Implementations block until the command finishes; no timeout is imposed
// beyond what the caller's context carries.
type Runner interface {
	Run(ctx context.Context, argv ...string) (string, error)
}

// ExecRunner runs commands on the host using os/exec.
type ExecRunner struct{}

// NewRunner creates a runner backed by the host's PATH.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv[0] with the remaining arguments and returns trimmed
// stdout. On failure the captured stderr is folded into the returned error
// so a single line tells the operator what the child printed.
func (r *ExecRunner) Run(ctx context.Context, argv ...string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("no command specified")
	}

	log.Logger.Debug().Str("component", "shell").Msg(shellquote.Join(argv...))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", argv[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
