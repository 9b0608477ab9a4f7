/*
Package compose probes the host's compose tooling and issues compose
subcommands for the upgrade pipeline.

Two invocation conventions exist in the wild: the docker CLI plugin
(`docker compose …`) and the older standalone binary (`docker-compose …`).
This package hides the difference behind one probed argv prefix, picks the
compose file the run operates on, and exposes the three compose operations
the pipeline needs: list a service's container, recreate a service, and
recreate it with a blocking wait.

# Probing

Probe answers three questions once per run, in order:

 1. Invocation style: `docker compose version`, then
    `docker-compose version`; the first that responds wins. Neither
    responding is fatal: the tool cannot proceed without compose.
 2. Compose file: fixed candidate order docker-compose.yml,
    docker-compose.yaml, compose.yml, compose.yaml; first existing file
    wins. None existing is fatal. An explicit override (--file) bypasses
    the search but must exist.
 3. Wait capability: whether `up --help` advertises --wait. Cached in
    the Environment and injected where needed; never re-probed. A failing
    help query simply reports no wait support.

The answers come back as a read-only types.Environment.

# Issuing Commands

Tool binds an Environment to a shell.Runner and pins the compose file on
every call with -f, so the run keeps operating on the probed file:

	docker compose -f docker-compose.yml ps -q n8n
	docker compose -f docker-compose.yml up -d --no-deps --force-recreate n8n
	docker compose -f docker-compose.yml up -d --no-deps --force-recreate --wait n8n

ContainerID treats every failure as "not running" and reports an empty
handle: a stopped service is an observation the version inspector knows
how to phrase, not an error. Recreate and RecreateWait propagate failures,
which are fatal to the run.

# Usage

	runner := shell.NewRunner()

	env, err := compose.Probe(ctx, runner, ".", "")
	if err != nil {
		return err
	}

	tool := compose.NewTool(env, runner)
	id := tool.ContainerID(ctx, "n8n")

	if err := tool.Recreate(ctx, "n8n"); err != nil {
		return err
	}
	if env.SupportsWait {
		if err := tool.RecreateWait(ctx, "n8n"); err != nil {
			return err
		}
	}

# Integration Points

This package integrates with:

  - pkg/shell: All probes and subcommands flow through a Runner
  - pkg/types: Produces the Environment threaded through the run
  - pkg/upgrade: Calls Probe once, then drives Tool for the recreate steps

# See Also

  - pkg/upgrade for the recreate sequencing, including the second
    recreate issued when --wait is supported
*/
package compose
