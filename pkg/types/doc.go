/*
Package types defines the core data structures used throughout n8nup.

This package contains the transient domain model of an upgrade run. Nothing
here is persisted: every value is derived fresh at the start of a run from
the host environment and the compose file, threaded through the pipeline,
and discarded when the process exits.

# Architecture

The types package is the foundation of n8nup's data model. It defines:

  - Environment: the probed host tooling (compose invocation style,
    compose file, wait capability)
  - ServiceDescriptor: the located n8n service and its declared image
  - Version string constants for the two non-version inspector outcomes
  - Report: the outcome of an upgrade run
  - Status: the read-only view behind `n8nup status`

All types are designed to be:

  - Derived once per run and treated as read-only afterwards
  - Plain data (no behavior beyond small formatting helpers)
  - Self-documenting (clear field names and comments)

# Core Types

Environment:
  - Populated by pkg/compose.Probe at the start of a run
  - Carries the compose argv prefix, the compose file path, and whether
    the tool's `up` supports --wait
  - The wait capability is probed once and cached here, never re-probed

ServiceDescriptor:
  - Populated by pkg/stack.Locate in a single scan of the compose file
  - Exactly one descriptor exists per run; failing to derive one is fatal
  - Repository is empty when the declared image does not match a
    recognized n8n repository; Image is empty when the service declares
    no image at all; both drive warn-and-skip decisions downstream

Version Strings:
  - VersionNotRunning ("not running"): the service has no container
  - VersionUnknown ("unknown"): a container exists but its version
    could not be determined
  - Both are successful inspector outcomes, never errors

# Usage

Building an Environment by hand (tests do this; production code uses
pkg/compose.Probe):

	env := &types.Environment{
		ComposeArgv:  []string{"docker", "compose"},
		ComposeFile:  "docker-compose.yml",
		SupportsWait: true,
	}

Inspecting a Report:

	rep, err := upgrader.Run(ctx, "1.110.0")
	if err != nil {
		return err
	}
	if !rep.Changed {
		fmt.Printf("version still %s\n", rep.VersionAfter)
	}

# Integration Points

This package integrates with:

  - pkg/compose: Produces the Environment and consumes it for every
    compose invocation
  - pkg/stack: Produces the ServiceDescriptor
  - pkg/inspect: Returns the version string constants
  - pkg/upgrade: Assembles Report and Status from the other types

# Thread Safety

Values in this package are written once during derivation and read-only
afterwards. The pipeline is strictly sequential, so no synchronization is
needed or provided.

# See Also

  - pkg/upgrade for the pipeline that threads these types together
  - pkg/stack for how the ServiceDescriptor is derived
*/
package types
