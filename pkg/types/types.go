package types

import (
	"strings"
	"time"
)

// Environment describes the host tooling discovered for one run. It is
// populated once by the environment probe and treated as read-only by every
// later stage.
type Environment struct {
	// ComposeArgv is the argv prefix for compose invocations, either
	// ["docker", "compose"] (plugin style) or ["docker-compose"]
	// (standalone style).
	ComposeArgv []string

	// ComposeFile is the path of the compose file the run operates on.
	ComposeFile string

	// SupportsWait reports whether `up` accepts the --wait flag. Probed
	// once per run and injected wherever the capability matters.
	SupportsWait bool
}

// ComposeStyle returns the invocation style as a printable command name.
func (e *Environment) ComposeStyle() string {
	return strings.Join(e.ComposeArgv, " ")
}

// ServiceDescriptor identifies the n8n service inside the compose file and
// the image reference it declares. It is derived exactly once per run and
// shared by the mutation, pull, and recreate stages.
type ServiceDescriptor struct {
	Name       string // compose service name
	Image      string // declared image reference, empty when the service has none
	Repository string // recognized repository portion, empty when not recognized
	Tag        string // declared tag, empty when the reference carries none
}

// Version strings reported by the inspector. Both are valid outcomes rather
// than errors: a stopped service and an unreadable version are expected
// states the reporter compares textually like any other version.
const (
	VersionNotRunning = "not running"
	VersionUnknown    = "unknown"
)

// Direction classifies how the running version moved across an upgrade,
// when both sides parse as semantic versions.
type Direction string

const (
	DirectionUpgrade   Direction = "upgrade"
	DirectionDowngrade Direction = "downgrade"
)

// Report captures the outcome of one upgrade run.
type Report struct {
	RunID          string
	Service        string
	ComposeFile    string
	DesiredTag     string
	Image          string // image reference handed to the pull step
	BackupFile     string // empty when the mutation was skipped
	LinesRewritten int
	VersionBefore  string
	VersionAfter   string
	Changed        bool
	Direction      Direction // empty when either version is not semver
	DryRun         bool
	StartedAt      time.Time
	FinishedAt     time.Time
}

// Status is the read-only view produced by `n8nup status`.
type Status struct {
	ComposeStyle string `yaml:"compose_style" json:"compose_style"`
	ComposeFile  string `yaml:"compose_file" json:"compose_file"`
	SupportsWait bool   `yaml:"supports_wait" json:"supports_wait"`
	Service      string `yaml:"service" json:"service"`
	Image        string `yaml:"image,omitempty" json:"image,omitempty"`
	Running      bool   `yaml:"running" json:"running"`
	Version      string `yaml:"version" json:"version"`
}
