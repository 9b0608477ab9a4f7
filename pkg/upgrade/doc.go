/*
Package upgrade orchestrates the rolling upgrade of a compose-managed n8n
service, from environment detection through outcome verification.

The package wires the probing, scanning, mutation, and container packages
into one linear pipeline. A single Upgrader value carries the run
configuration; Run executes the pipeline once for one desired tag, and
Status derives the same environment view without mutating anything.

The pipeline is deliberately sequential. Each step depends on the product
of the previous one (the probed environment feeds the scanner, the
scanner's descriptor feeds the rewrite and the recreate), and the first
fatal condition aborts the run exactly where it stands. There is no
rollback: once the compose file has been rewritten, a later failure leaves
the new tag in place and the timestamped backup is the operator's recovery
path.

# Architecture

	┌──────────────────────── Upgrader.Run ─────────────────────────┐
	│                                                               │
	│  compose.Probe ──▶ os.ReadFile ──▶ stack.Locate               │
	│       │                                 │                     │
	│       ▼                                 ▼                     │
	│  types.Environment           types.ServiceDescriptor          │
	│       │                                 │                     │
	│       └──────────────┬──────────────────┘                     │
	│                      ▼                                        │
	│         inspect.RunningVersion (before)                       │
	│                      │                                        │
	│                      ▼                                        │
	│         stack.RewriteTag (backup first)   ◀─ warn-skips       │
	│                      │                                        │
	│                      ▼                                        │
	│                 docker.Pull                                   │
	│                      │                                        │
	│                      ▼                                        │
	│     compose.Recreate ──▶ compose.RecreateWait (if capable)    │
	│                      │                                        │
	│                      ▼                                        │
	│            grace sleep (context aware)                        │
	│                      │                                        │
	│                      ▼                                        │
	│         inspect.RunningVersion (after)                        │
	│                      │                                        │
	│                      ▼                                        │
	│                 types.Report                                  │
	└───────────────────────────────────────────────────────────────┘

# Core Components

Config:
  - Runner: subprocess executor, injectable for tests
  - Dir/File: compose project directory and optional file override
  - GracePeriod: settle time before the post-upgrade version check
  - DryRun: stop after printing the plan
  - Out: progress writer (stdout by default; logs go to stderr)

Upgrader:
  - Run: executes the pipeline once for one desired tag
  - Status: probes, locates, and inspects without side effects
  - Produces a types.Report: versions before and after, backup path,
    rewritten line count, change verdict, and direction

direction:
  - Classifies the version movement via semantic version ordering
  - Sentinel outcomes ("not running", "unknown") do not parse and yield
    no direction, so upgrade/downgrade verdicts only appear when both
    endpoints were real versions

# Failure Policy

Three conditions are warnings, not failures:

  - the located service declares no image line (compose file left
    unchanged, the stock image is pulled anyway)
  - the declared image is not a recognized n8n repository (same
    treatment; the operator pinned something deliberate)
  - the rewrite matched zero lines after the backup was already taken

Everything else on the mutation path is fatal: an unreadable compose
file, a failed backup, a failed pull, a failed recreate. The version
probes are never fatal; an undeterminable version becomes the "unknown"
sentinel and the run continues to its report.

A Report with Changed == false is not an error either. The caller decides
how loudly to warn; the run itself completed.

# Usage

Upgrade to a specific tag:

	u := upgrade.New(upgrade.Config{
		Dir:         "/srv/n8n",
		GracePeriod: 10 * time.Second,
	})

	rep, err := u.Run(ctx, "1.109.0")
	if err != nil {
		return err
	}
	if !rep.Changed {
		fmt.Println("version unchanged; check the service logs")
	}

Inspect without touching anything:

	st, err := u.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s running %s\n", st.Service, st.Version)

# Integration Points

This package integrates with:

  - pkg/compose: environment probing and service recreation
  - pkg/stack: service location and tag rewriting
  - pkg/docker: image pulls and in-container execs
  - pkg/inspect: version derivation at the two observation points
  - pkg/shell: the injectable subprocess runner
  - pkg/log: run-scoped structured logging (run_id field)
  - cmd/n8nup: the only consumer; maps Report fields to exit codes and
    colored terminal output

# See Also

  - pkg/compose for how the environment is detected
  - pkg/stack for the line scanner and rewrite rules
  - pkg/types for the Environment, ServiceDescriptor, and Report shapes
*/
package upgrade
