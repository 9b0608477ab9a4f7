package stack

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// BackupTimeFormat is the timestamp layout appended to config snapshots,
// second granularity: docker-compose.yml.bak-20260825103000.
const BackupTimeFormat = "20060102150405"

// RewriteTag rewrites every `image: <repo>:<anything>` line in the file at
// path to declare tag instead. Indentation, spacing, and the repository are
// preserved byte-for-byte; everything after `<repo>:` on a matching line is
// replaced up to the end of the line. Applying the same tag twice yields
// the same document.
//
// A snapshot of the whole file, named with at's timestamp, is written
// before the document is touched. If the snapshot cannot be created the
// original is left untouched and the error is fatal to the caller. The
// rewritten line count is reported so callers can warn when nothing
// matched (quoted references and tagless lines are left as they are).
func RewriteTag(path, repo, tag string, at time.Time) (backup string, changed int, err error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	mode := info.Mode().Perm()

	backup = fmt.Sprintf("%s.bak-%s", path, at.Format(BackupTimeFormat))
	if err := os.WriteFile(backup, doc, mode); err != nil {
		return "", 0, fmt.Errorf("failed to back up %s: %w", path, err)
	}

	re := regexp.MustCompile(`^(\s*image:\s*)` + regexp.QuoteMeta(repo) + `:.*$`)

	lines := strings.Split(string(doc), "\n")
	for i, line := range lines {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lines[i] = m[1] + repo + ":" + tag
		changed++
	}

	if changed == 0 {
		return backup, 0, nil
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), mode); err != nil {
		return backup, changed, fmt.Errorf("failed to rewrite %s: %w", path, err)
	}
	return backup, changed, nil
}
