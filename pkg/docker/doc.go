/*
Package docker wraps the docker command line client.

The upgrade pipeline touches the container runtime in exactly two ways
outside of compose: it pulls the target image ahead of the recreate so the
service's downtime excludes the download, and it executes version probes
inside the running container. Both go through the docker CLI as
subprocesses rather than the engine API, matching how the rest of the tool
drives its collaborators.

# Usage

	cli := docker.NewCLI(shell.NewRunner())

	if err := cli.Pull(ctx, "n8nio/n8n:1.110.0"); err != nil {
		return err // fatal: the upgrade must not recreate onto a missing image
	}

	out, err := cli.Exec(ctx, containerID, "n8n", "--version")

# Integration Points

This package integrates with:

  - pkg/shell: Both operations flow through a Runner
  - pkg/inspect: Exec carries the version probes
  - pkg/upgrade: Pull runs between the tag rewrite and the recreate

# See Also

  - pkg/compose for the compose-side container operations
*/
package docker
