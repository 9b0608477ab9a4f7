package compose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cuemby/n8nup/pkg/log"
	"github.com/cuemby/n8nup/pkg/shell"
	"github.com/cuemby/n8nup/pkg/types"
)

// styles lists the compose invocation conventions, probed in order. The
// plugin form is preferred when both respond.
var styles = [][]string{
	{"docker", "compose"},
	{"docker-compose"},
}

// fileCandidates lists compose file names, checked in order. The first
// existing file wins.
var fileCandidates = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Probe discovers the compose environment for one run: which invocation
// style responds, which compose file to operate on, and whether `up`
// understands --wait. The result is derived once, injected into every
// later stage, and never re-probed.
//
// fileOverride skips the candidate search but must name an existing file;
// relative overrides are resolved against dir.
func Probe(ctx context.Context, runner shell.Runner, dir, fileOverride string) (*types.Environment, error) {
	argv, err := detectStyle(ctx, runner)
	if err != nil {
		return nil, err
	}

	file, err := detectFile(dir, fileOverride)
	if err != nil {
		return nil, err
	}

	env := &types.Environment{
		ComposeArgv:  argv,
		ComposeFile:  file,
		SupportsWait: detectWait(ctx, runner, argv),
	}

	log.Logger.Debug().
		Str("component", "compose").
		Str("style", env.ComposeStyle()).
		Str("file", env.ComposeFile).
		Bool("supports_wait", env.SupportsWait).
		Msg("environment probed")

	return env, nil
}

// detectStyle probes each invocation convention with a version query and
// returns the first that responds.
func detectStyle(ctx context.Context, runner shell.Runner) ([]string, error) {
	for _, argv := range styles {
		probe := append([]string{}, argv...)
		probe = append(probe, "version")
		if _, err := runner.Run(ctx, probe...); err == nil {
			return argv, nil
		}
	}
	return nil, fmt.Errorf("failed to detect a compose command: neither %q nor %q responded", "docker compose", "docker-compose")
}

// detectFile picks the compose file the run operates on.
func detectFile(dir, override string) (string, error) {
	if override != "" {
		path := override
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("compose file %s: %w", path, err)
		}
		return path, nil
	}

	for _, name := range fileCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no compose file found in %s (tried %s)", dir, strings.Join(fileCandidates, ", "))
}

// detectWait reports whether `up` advertises a --wait flag. The probe is
// best-effort: a failing help query just means no wait support.
func detectWait(ctx context.Context, runner shell.Runner, argv []string) bool {
	probe := append([]string{}, argv...)
	probe = append(probe, "up", "--help")
	out, err := runner.Run(ctx, probe...)
	return err == nil && strings.Contains(out, "--wait")
}
