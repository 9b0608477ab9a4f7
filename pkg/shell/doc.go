/*
Package shell runs external commands and captures their output.

Every interaction n8nup has with the outside world (probing the compose
command, listing containers, pulling images, recreating services, reading a
version from inside a container) is a subprocess call that flows through
this package. Centralizing the calls gives the rest of the codebase one
seam to fake in tests and one place where command lines are logged.

# Core Components

Runner:
  - Interface with a single Run(ctx, argv...) method
  - argv[0] is the program, the rest are its arguments
  - Returns trimmed stdout; stderr is captured and folded into the
    returned error so failures surface as a single line
  - Blocks until the child exits; no timeout of its own is imposed,
    matching the sequential, no-retry execution model

ExecRunner:
  - The production implementation backed by os/exec
  - Logs every command line at debug level (shell-quoted, so the line
    can be pasted back into a terminal)
  - Honors context cancellation via exec.CommandContext

# Usage

	runner := shell.NewRunner()

	out, err := runner.Run(ctx, "docker", "compose", "version")
	if err != nil {
		// err carries the child's stderr, e.g.
		// docker: exit status 1: unknown command "compose"
	}

Tests substitute a scripted implementation:

	type fakeRunner struct {
		calls [][]string
	}

	func (f *fakeRunner) Run(ctx context.Context, argv ...string) (string, error) {
		f.calls = append(f.calls, argv)
		return "", nil
	}

# Integration Points

This package integrates with:

  - pkg/compose: All compose subcommands go through a Runner
  - pkg/docker: Image pulls and container execs go through a Runner
  - pkg/upgrade: Constructs the default ExecRunner when none is injected

# See Also

  - pkg/compose for how compose argv prefixes are assembled
*/
package shell
