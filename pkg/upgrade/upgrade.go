package upgrade

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/google/uuid"

	"github.com/cuemby/n8nup/pkg/compose"
	"github.com/cuemby/n8nup/pkg/docker"
	"github.com/cuemby/n8nup/pkg/inspect"
	"github.com/cuemby/n8nup/pkg/log"
	"github.com/cuemby/n8nup/pkg/shell"
	"github.com/cuemby/n8nup/pkg/stack"
	"github.com/cuemby/n8nup/pkg/types"
)

// Config controls one upgrade run.
type Config struct {
	// Runner executes external commands; defaults to the host runner.
	Runner shell.Runner

	// Dir is the compose project directory; defaults to ".".
	Dir string

	// File pins the compose file explicitly; empty enables discovery.
	File string

	// GracePeriod is the settle time between the recreate and the
	// post-upgrade version check.
	GracePeriod time.Duration

	// DryRun stops the pipeline after printing the plan: nothing is
	// backed up, rewritten, pulled, or recreated.
	DryRun bool

	// Out receives step-by-step progress; defaults to os.Stdout.
	Out io.Writer
}

// Upgrader drives the upgrade pipeline.
type Upgrader struct {
	runner shell.Runner
	dir    string
	file   string
	grace  time.Duration
	dryRun bool
	out    io.Writer
}

// New creates an upgrader from cfg, applying defaults.
func New(cfg Config) *Upgrader {
	runner := cfg.Runner
	if runner == nil {
		runner = shell.NewRunner()
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	return &Upgrader{
		runner: runner,
		dir:    dir,
		file:   cfg.File,
		grace:  cfg.GracePeriod,
		dryRun: cfg.DryRun,
		out:    out,
	}
}

// Run upgrades the n8n service to tag and reports the outcome. The
// pipeline is strictly linear: every step runs at most once and the first
// fatal condition aborts the run where it stands. A document already
// rewritten when a later step fails stays rewritten; the timestamped
// backup is the recovery path.
func (u *Upgrader) Run(ctx context.Context, tag string) (*types.Report, error) {
	start := time.Now()
	runID := uuid.New().String()[:8]
	logger := log.WithRunID(runID)

	rep := &types.Report{
		RunID:      runID,
		DesiredTag: tag,
		DryRun:     u.dryRun,
		StartedAt:  start,
	}

	env, err := compose.Probe(ctx, u.runner, u.dir, u.file)
	if err != nil {
		return nil, err
	}
	rep.ComposeFile = env.ComposeFile
	fmt.Fprintf(u.out, "Compose command: %s\n", env.ComposeStyle())
	fmt.Fprintf(u.out, "Compose file: %s\n", env.ComposeFile)

	doc, err := os.ReadFile(env.ComposeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", env.ComposeFile, err)
	}

	desc, err := stack.Locate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, env.ComposeFile)
	}
	rep.Service = desc.Name
	logger.Info().Str("service", desc.Name).Str("image", desc.Image).Msg("service located")
	if desc.Image != "" {
		fmt.Fprintf(u.out, "Service: %s (image: %s)\n", desc.Name, desc.Image)
	} else {
		fmt.Fprintf(u.out, "Service: %s (no image line)\n", desc.Name)
	}

	tool := compose.NewTool(env, u.runner)
	cli := docker.NewCLI(u.runner)

	before := inspect.RunningVersion(ctx, cli, tool.ContainerID(ctx, desc.Name))
	rep.VersionBefore = before
	fmt.Fprintf(u.out, "Current version: %s\n", before)

	repo := desc.Repository
	if repo == "" {
		repo = stack.DefaultRepository
	}
	rep.Image = repo + ":" + tag

	fmt.Fprintf(u.out, "\nUpgrading %s to %s:\n", desc.Name, rep.Image)

	if u.dryRun {
		switch {
		case desc.Image == "":
			fmt.Fprintf(u.out, "  Would skip the rewrite: %s declares no image\n", desc.Name)
		case desc.Repository == "":
			fmt.Fprintf(u.out, "  Would skip the rewrite: image %q not recognized\n", desc.Image)
		default:
			fmt.Fprintf(u.out, "  Would back up and rewrite %s\n", env.ComposeFile)
		}
		fmt.Fprintf(u.out, "  Would pull %s\n", rep.Image)
		fmt.Fprintf(u.out, "  Would recreate %s (wait supported: %v)\n", desc.Name, env.SupportsWait)
		rep.FinishedAt = time.Now()
		return rep, nil
	}

	switch {
	case desc.Image == "":
		logger.Warn().Str("service", desc.Name).Msg("service declares no image; compose file left unchanged")
		fmt.Fprintf(u.out, "  Warning: %s declares no image; compose file left unchanged\n", desc.Name)
	case desc.Repository == "":
		logger.Warn().Str("image", desc.Image).Msg("image repository not recognized; compose file left unchanged")
		fmt.Fprintf(u.out, "  Warning: image %q not recognized; compose file left unchanged\n", desc.Image)
	default:
		backup, changed, err := stack.RewriteTag(env.ComposeFile, desc.Repository, tag, start)
		if err != nil {
			return nil, err
		}
		rep.BackupFile = backup
		rep.LinesRewritten = changed
		fmt.Fprintf(u.out, "  ✓ Backed up %s\n", backup)
		if changed == 0 {
			logger.Warn().Str("repository", desc.Repository).Msg("no image line matched; compose file left unchanged")
			fmt.Fprintf(u.out, "  Warning: no image line matched %s; compose file left unchanged\n", desc.Repository)
		} else {
			logger.Info().Str("image", rep.Image).Int("lines", changed).Msg("compose file rewritten")
			fmt.Fprintf(u.out, "  ✓ Set image to %s\n", rep.Image)
		}
	}

	if err := cli.Pull(ctx, rep.Image); err != nil {
		return nil, err
	}
	fmt.Fprintf(u.out, "  ✓ Pulled %s\n", rep.Image)

	if err := tool.Recreate(ctx, desc.Name); err != nil {
		return nil, err
	}
	fmt.Fprintf(u.out, "  ✓ Recreated %s\n", desc.Name)

	if env.SupportsWait {
		// Deliberately a second recreate: the first brings the service up
		// immediately, this one blocks until compose reports it running.
		if err := tool.RecreateWait(ctx, desc.Name); err != nil {
			return nil, err
		}
		fmt.Fprintf(u.out, "  ✓ Waited for %s\n", desc.Name)
	}

	if u.grace > 0 {
		fmt.Fprintf(u.out, "\nGiving %s %s to settle...\n", desc.Name, u.grace)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(u.grace):
		}
	}

	after := inspect.RunningVersion(ctx, cli, tool.ContainerID(ctx, desc.Name))
	rep.VersionAfter = after
	rep.Changed = after != before
	rep.Direction = direction(before, after)
	rep.FinishedAt = time.Now()

	logger.Info().
		Str("before", before).
		Str("after", after).
		Bool("changed", rep.Changed).
		Msg("upgrade finished")

	return rep, nil
}

// Status derives the read-only view of the environment and the running
// service. Nothing is mutated; the only side effects are the probe and
// inspection subprocesses.
func (u *Upgrader) Status(ctx context.Context) (*types.Status, error) {
	env, err := compose.Probe(ctx, u.runner, u.dir, u.file)
	if err != nil {
		return nil, err
	}

	doc, err := os.ReadFile(env.ComposeFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", env.ComposeFile, err)
	}

	desc, err := stack.Locate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, env.ComposeFile)
	}

	tool := compose.NewTool(env, u.runner)
	id := tool.ContainerID(ctx, desc.Name)
	version := inspect.RunningVersion(ctx, docker.NewCLI(u.runner), id)

	return &types.Status{
		ComposeStyle: env.ComposeStyle(),
		ComposeFile:  env.ComposeFile,
		SupportsWait: env.SupportsWait,
		Service:      desc.Name,
		Image:        desc.Image,
		Running:      id != "",
		Version:      version,
	}, nil
}

// direction classifies the version movement when both sides parse as
// semantic versions. Non-semver outcomes ("not running", "unknown") and
// equal versions yield no direction.
func direction(before, after string) types.Direction {
	bv, err := semver.NewVersion(strings.TrimPrefix(before, "v"))
	if err != nil {
		return ""
	}
	av, err := semver.NewVersion(strings.TrimPrefix(after, "v"))
	if err != nil {
		return ""
	}
	switch {
	case bv.LessThan(*av):
		return types.DirectionUpgrade
	case av.LessThan(*bv):
		return types.DirectionDowngrade
	default:
		return ""
	}
}
