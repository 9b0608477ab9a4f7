package inspect

import (
	"context"
	"strings"

	"github.com/cuemby/n8nup/pkg/log"
	"github.com/cuemby/n8nup/pkg/types"
)

// Runtime is the slice of the container runtime the inspector needs.
type Runtime interface {
	Exec(ctx context.Context, containerID string, argv ...string) (string, error)
}

// packageVersionScript reads the installed n8n package's declared version,
// for images where the n8n binary itself refuses to answer.
const packageVersionScript = "console.log(require('n8n/package.json').version)"

// RunningVersion reports the n8n version active inside containerID. It
// never fails: an empty handle reports "not running", and a container
// whose version cannot be read by either probe reports "unknown". Every
// outcome is a valid version string for the reporter to compare.
func RunningVersion(ctx context.Context, rt Runtime, containerID string) string {
	if containerID == "" {
		return types.VersionNotRunning
	}

	if out, err := rt.Exec(ctx, containerID, "n8n", "--version"); err == nil {
		if v := strings.TrimSpace(out); v != "" {
			return v
		}
	}

	// The n8n CLI can be unavailable or broken inside slim images; fall
	// back to the package metadata via node.
	if out, err := rt.Exec(ctx, containerID, "node", "-e", packageVersionScript); err == nil {
		if v := strings.TrimSpace(out); v != "" {
			return v
		}
	}

	log.Logger.Debug().
		Str("component", "inspect").
		Str("container", containerID).
		Msg("both version probes failed")

	return types.VersionUnknown
}
