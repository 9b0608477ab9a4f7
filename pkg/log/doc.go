/*
Package log provides structured logging for n8nup using zerolog.

The log package wraps the zerolog library to provide structured logging with
run-scoped context fields, configurable log levels, and helper functions for
common logging patterns. All logs include timestamps and go to stderr by
default so that command output on stdout stays clean and machine-readable.

# Architecture

n8nup's logging system provides structured logging with minimal overhead:

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                          │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                   │          │
	│  │  - Zerolog instance                        │          │
	│  │  - Initialized via log.Init()              │          │
	│  │  - Thread-safe for concurrent use          │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                    │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                    │          │
	│  │  - Level: debug/info/warn/error            │          │
	│  │  - Format: JSON or console (human)         │          │
	│  │  - Output: stderr, file, or custom writer  │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                    │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │         Context Loggers                    │          │
	│  │  - WithComponent("shell")                  │          │
	│  │  - WithRunID("9f3c21ab")                   │          │
	│  │  - WithService("n8n")                      │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                    │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                      │          │
	│  │                                            │          │
	│  │  JSON Format:                              │          │
	│  │  {                                         │          │
	│  │    "level": "info",                        │          │
	│  │    "run_id": "9f3c21ab",                   │          │
	│  │    "time": "2026-08-25T10:30:00Z",         │          │
	│  │    "message": "image pulled"               │          │
	│  │  }                                         │          │
	│  │                                            │          │
	│  │  Console Format:                           │          │
	│  │  10:30AM INF image pulled run_id=9f3c21ab  │          │
	│  └────────────────────────────────────────────┘          │
	└──────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init() in the command layer
  - Accessible from all n8nup packages
  - The zero value discards everything, so library code may log before
    Init without crashing (tests rely on this)

Log Levels:
  - Debug: subprocess command lines and scanner decisions
  - Info: step-by-step pipeline progress
  - Warn: advisory conditions that do not abort the run
  - Error: fatal conditions, logged on the way out

Configuration:
  - Level: Filter messages below threshold
  - JSONOutput: JSON vs human-readable console
  - Output: io.Writer for log destination (defaults to stderr)

Context Loggers:
  - WithComponent: Add component name to all logs
  - WithRunID: Add the short run identifier
  - WithService: Add the located compose service name

# Usage

Initializing the Logger:

	import "github.com/cuemby/n8nup/pkg/log"

	// Console output (default)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: false,
		Output:     os.Stderr,
	})

	// JSON output (for log collection)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stderr,
	})

Simple Logging:

	log.Info("compose environment probed")
	log.Warn("image repository not recognized; leaving file unchanged")

Structured Logging:

	log.Logger.Info().
		Str("image", "n8nio/n8n:1.110.0").
		Msg("image pulled")

	log.Logger.Debug().
		Str("component", "shell").
		Msg("docker compose -f docker-compose.yml ps -q n8n")

Context Loggers:

	runLog := log.WithRunID(runID)
	runLog.Info().Str("service", svc).Msg("recreating service")

# Integration Points

This package integrates with:

  - pkg/shell: Logs every subprocess command line at debug level
  - pkg/upgrade: Logs each pipeline step with the run id
  - cmd/n8nup: Initializes the logger from --log-level and --log-json

# Design Patterns

Streams:
  - stderr carries diagnostics (this package)
  - stdout carries step progress and the status report
  - The separation keeps `n8nup status -o yaml` pipeable

Error Logging Pattern:
  - Fatal conditions are returned as errors, not logged and swallowed
  - The command layer prints the final error once; intermediate layers
    only add context via wrapping

# See Also

  - Zerolog documentation: https://github.com/rs/zerolog
  - 12-Factor App Logs: https://12factor.net/logs
*/
package log
