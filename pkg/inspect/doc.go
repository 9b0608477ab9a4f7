/*
Package inspect determines which n8n version is running inside a container.

The inspector is the one component in the pipeline that is forbidden to
fail. It is called twice per upgrade, before the mutation and after the
recreate plus grace period, and the outcome reporter compares the two
answers textually. A stopped service, a container without a working n8n
binary, and a healthy container are all just different answers:

  - ""-handle            → "not running"
  - `n8n --version` works → its trimmed output
  - `node -e <read package version>` works → its trimmed output
  - neither works         → "unknown"

The probes run inside the container via the runtime's exec interface; the
package never looks at the host. Probe errors and empty outputs fall
through to the next probe rather than propagating; by the time both have
failed there is still a valid answer to give.

# Usage

	cli := docker.NewCLI(runner)
	id := tool.ContainerID(ctx, "n8n")

	version := inspect.RunningVersion(ctx, cli, id)
	// version is always printable: "1.108.0", "not running", "unknown", ...

# Integration Points

This package integrates with:

  - pkg/docker: The Runtime interface is satisfied by docker.CLI
  - pkg/types: Returns the shared version string constants
  - pkg/upgrade: Provides both sides of the before/after comparison

# See Also

  - pkg/upgrade for how the two observations bracket the recreate
*/
package inspect
