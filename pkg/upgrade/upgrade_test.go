package upgrade

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuemby/n8nup/pkg/stack"
	"github.com/cuemby/n8nup/pkg/types"
)

// scriptedRunner answers the pipeline's subprocess calls from canned
// responses and records every call for later assertions. The version
// reported by the container flips from before to after once a recreate
// has been observed.
type scriptedRunner struct {
	calls [][]string

	before string
	after  string

	execErr                  error
	pullErr                  error
	noContainerUntilRecreate bool

	recreated bool
}

func (s *scriptedRunner) Run(_ context.Context, argv ...string) (string, error) {
	s.calls = append(s.calls, append([]string{}, argv...))
	cmd := strings.Join(argv, " ")
	switch {
	case cmd == "docker compose version":
		return "Docker Compose version v2.27.0", nil
	case strings.HasSuffix(cmd, "up --help"):
		return "Options:\n      --wait    Wait for services to be running|healthy\n", nil
	case strings.Contains(cmd, "ps -q"):
		if s.noContainerUntilRecreate && !s.recreated {
			return "", nil
		}
		return "abc123def456", nil
	case strings.HasPrefix(cmd, "docker pull"):
		if s.pullErr != nil {
			return "", s.pullErr
		}
		return "", nil
	case strings.Contains(cmd, "--force-recreate"):
		s.recreated = true
		return "", nil
	case strings.HasPrefix(cmd, "docker exec"):
		if s.execErr != nil {
			return "", s.execErr
		}
		if s.recreated {
			return s.after, nil
		}
		return s.before, nil
	}
	return "", fmt.Errorf("unscripted command: %s", cmd)
}

// has reports whether any recorded call contains fragment.
func (s *scriptedRunner) has(fragment string) bool {
	for _, argv := range s.calls {
		if strings.Contains(strings.Join(argv, " "), fragment) {
			return true
		}
	}
	return false
}

// recreateCalls returns the recorded force-recreate invocations in order.
func (s *scriptedRunner) recreateCalls() [][]string {
	var out [][]string
	for _, argv := range s.calls {
		for _, a := range argv {
			if a == "--force-recreate" {
				out = append(out, argv)
				break
			}
		}
	}
	return out
}

const composeDoc = `services:
  n8n:
    image: n8nio/n8n:1.108.0
    restart: always
  db:
    image: postgres:16
`

func writeProject(t *testing.T, doc string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "docker-compose.yml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return dir
}

// TestRun_UpgradesServiceEndToEnd tests the full pipeline: rewrite,
// backup, pull, double recreate, and outcome verification.
func TestRun_UpgradesServiceEndToEnd(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{before: "1.108.0", after: "1.109.0"}
	var out bytes.Buffer

	u := New(Config{
		Runner:      runner,
		Dir:         dir,
		GracePeriod: 5 * time.Millisecond,
		Out:         &out,
	})

	rep, err := u.Run(context.Background(), "1.109.0")
	require.NoError(t, err)

	assert.Equal(t, "n8n", rep.Service)
	assert.Equal(t, "n8nio/n8n:1.109.0", rep.Image)
	assert.Equal(t, "1.108.0", rep.VersionBefore)
	assert.Equal(t, "1.109.0", rep.VersionAfter)
	assert.True(t, rep.Changed)
	assert.Equal(t, types.DirectionUpgrade, rep.Direction)
	assert.Equal(t, 1, rep.LinesRewritten)

	doc, err := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "image: n8nio/n8n:1.109.0")
	assert.NotContains(t, string(doc), "1.108.0")
	assert.Contains(t, string(doc), "image: postgres:16")

	backup, err := os.ReadFile(rep.BackupFile)
	require.NoError(t, err)
	assert.Equal(t, composeDoc, string(backup))

	assert.True(t, runner.has("docker pull n8nio/n8n:1.109.0"))

	recreates := runner.recreateCalls()
	require.Len(t, recreates, 2)
	assert.NotContains(t, recreates[0], "--wait")
	assert.Contains(t, recreates[1], "--wait")
	assert.Contains(t, recreates[1], "n8n")

	assert.Contains(t, out.String(), "✓ Pulled n8nio/n8n:1.109.0")
}

// TestRun_NoServiceFailsBeforeAnyMutation tests that an undetectable
// service aborts the run before the backup, rewrite, or pull happen.
func TestRun_NoServiceFailsBeforeAnyMutation(t *testing.T) {
	doc := "volumes:\n  data:\n"
	dir := writeProject(t, doc)
	runner := &scriptedRunner{}

	u := New(Config{Runner: runner, Dir: dir, Out: io.Discard})

	_, err := u.Run(context.Background(), "1.109.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, stack.ErrNoService)

	got, readErr := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, readErr)
	assert.Equal(t, doc, string(got))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "no backup should be created")

	assert.False(t, runner.has("docker pull"))
	assert.False(t, runner.has("--force-recreate"))
}

// TestRun_UnknownVersionsStillSucceed tests that undeterminable versions
// on both sides end the run without an error.
func TestRun_UnknownVersionsStillSucceed(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{execErr: errors.New("n8n: not found")}

	u := New(Config{Runner: runner, Dir: dir, Out: io.Discard})

	rep, err := u.Run(context.Background(), "1.109.0")
	require.NoError(t, err)

	assert.Equal(t, types.VersionUnknown, rep.VersionBefore)
	assert.Equal(t, types.VersionUnknown, rep.VersionAfter)
	assert.False(t, rep.Changed)
	assert.Equal(t, types.Direction(""), rep.Direction)
}

// TestRun_DryRunMutatesNothing tests that a dry run probes and plans but
// never rewrites, pulls, or recreates.
func TestRun_DryRunMutatesNothing(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{before: "1.108.0", after: "1.109.0"}
	var out bytes.Buffer

	u := New(Config{Runner: runner, Dir: dir, DryRun: true, Out: &out})

	rep, err := u.Run(context.Background(), "1.109.0")
	require.NoError(t, err)
	assert.True(t, rep.DryRun)
	assert.Equal(t, "1.108.0", rep.VersionBefore)
	assert.Empty(t, rep.BackupFile)

	got, readErr := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, readErr)
	assert.Equal(t, composeDoc, string(got))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "no backup should be created")

	assert.False(t, runner.has("docker pull"))
	assert.False(t, runner.has("--force-recreate"))
	assert.Contains(t, out.String(), "Would pull n8nio/n8n:1.109.0")
}

// TestRun_FallbackServicePullsDefaultRepository tests the name-matched
// fallback: the compose file is left alone and the stock image is pulled.
func TestRun_FallbackServicePullsDefaultRepository(t *testing.T) {
	doc := "services:\n  n8n:\n    image: internal.example.com/n8n:2\n"
	dir := writeProject(t, doc)
	runner := &scriptedRunner{before: "1.108.0", after: "1.109.0"}

	u := New(Config{Runner: runner, Dir: dir, Out: io.Discard})

	rep, err := u.Run(context.Background(), "1.109.0")
	require.NoError(t, err)

	assert.Equal(t, "n8nio/n8n:1.109.0", rep.Image)
	assert.Empty(t, rep.BackupFile)
	assert.True(t, runner.has("docker pull n8nio/n8n:1.109.0"))

	got, readErr := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, readErr)
	assert.Equal(t, doc, string(got))
}

// TestRun_StartsStoppedService tests upgrading a service that has no
// running container before the run.
func TestRun_StartsStoppedService(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{after: "1.109.0", noContainerUntilRecreate: true}

	u := New(Config{Runner: runner, Dir: dir, Out: io.Discard})

	rep, err := u.Run(context.Background(), "1.109.0")
	require.NoError(t, err)

	assert.Equal(t, types.VersionNotRunning, rep.VersionBefore)
	assert.Equal(t, "1.109.0", rep.VersionAfter)
	assert.True(t, rep.Changed)
	assert.Equal(t, types.Direction(""), rep.Direction)
}

// TestRun_PullFailureLeavesRewrittenFileAndBackup tests that a failed
// pull aborts the run after the rewrite: the file keeps the new tag and
// the backup holds the original.
func TestRun_PullFailureLeavesRewrittenFileAndBackup(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{before: "1.108.0", pullErr: errors.New("pull access denied")}

	u := New(Config{Runner: runner, Dir: dir, Out: io.Discard})

	_, err := u.Run(context.Background(), "1.109.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "n8nio/n8n:1.109.0")

	got, readErr := os.ReadFile(filepath.Join(dir, "docker-compose.yml"))
	require.NoError(t, readErr)
	assert.Contains(t, string(got), "image: n8nio/n8n:1.109.0")

	matches, globErr := filepath.Glob(filepath.Join(dir, "docker-compose.yml.bak-*"))
	require.NoError(t, globErr)
	require.Len(t, matches, 1)

	backup, readErr := os.ReadFile(matches[0])
	require.NoError(t, readErr)
	assert.Equal(t, composeDoc, string(backup))

	assert.False(t, runner.has("--force-recreate"))
}

// TestStatus tests the read-only environment and version report.
func TestStatus(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{before: "1.108.0"}

	u := New(Config{Runner: runner, Dir: dir})

	st, err := u.Status(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "docker compose", st.ComposeStyle)
	assert.Equal(t, filepath.Join(dir, "docker-compose.yml"), st.ComposeFile)
	assert.True(t, st.SupportsWait)
	assert.Equal(t, "n8n", st.Service)
	assert.Equal(t, "n8nio/n8n:1.108.0", st.Image)
	assert.True(t, st.Running)
	assert.Equal(t, "1.108.0", st.Version)
}

// TestStatus_ServiceNotRunning tests the report for a stopped service.
func TestStatus_ServiceNotRunning(t *testing.T) {
	dir := writeProject(t, composeDoc)
	runner := &scriptedRunner{noContainerUntilRecreate: true}

	u := New(Config{Runner: runner, Dir: dir})

	st, err := u.Status(context.Background())
	require.NoError(t, err)
	assert.False(t, st.Running)
	assert.Equal(t, types.VersionNotRunning, st.Version)
}

// TestDirection tests semantic version movement classification.
func TestDirection(t *testing.T) {
	tests := []struct {
		name   string
		before string
		after  string
		want   types.Direction
	}{
		{name: "upgrade", before: "1.108.0", after: "1.109.0", want: types.DirectionUpgrade},
		{name: "downgrade", before: "1.109.0", after: "1.108.0", want: types.DirectionDowngrade},
		{name: "equal versions", before: "1.108.0", after: "1.108.0", want: ""},
		{name: "v prefixes accepted", before: "v1.108.0", after: "v1.109.0", want: types.DirectionUpgrade},
		{name: "not running before", before: "not running", after: "1.109.0", want: ""},
		{name: "unknown after", before: "1.108.0", after: "unknown", want: ""},
		{name: "both unknown", before: "unknown", after: "unknown", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, direction(tt.before, tt.after))
		})
	}
}
