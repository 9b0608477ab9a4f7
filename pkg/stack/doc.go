/*
Package stack locates the n8n service inside a compose file and rewrites
its declared image tag in place.

This package owns the only nontrivial parsing in n8nup. It deliberately
does not parse YAML: the tool targets plain, hand-written compose files,
and a full parser would reformat documents, drop comments, and accept
layouts (anchors, multi-document streams, deep nesting) that the rewrite
step could not faithfully mutate anyway. Instead, both halves of the
package work on the document's raw lines: a state-machine scanner for
detection and an anchored per-line substitution for mutation, sharing one
definition of what a recognized n8n image looks like.

# Architecture

	┌────────────────────── pkg/stack ──────────────────────────┐
	│                                                           │
	│  compose file bytes                                       │
	│        │                                                  │
	│  ┌─────▼──────────────────────────────┐                   │
	│  │ Locate (scanner.go)                │                   │
	│  │  state machine over lines:         │                   │
	│  │   outside ──"services:"──▶ inside  │                   │
	│  │   inside: track current service,   │                   │
	│  │   match image: lines, collect      │                   │
	│  │   the "n8n"-named fallback         │                   │
	│  └─────┬──────────────────────────────┘                   │
	│        │ *types.ServiceDescriptor                         │
	│        ▼                                                  │
	│  ┌────────────────────────────────────┐                   │
	│  │ RewriteTag (rewrite.go)            │                   │
	│  │  1. snapshot file (.bak-<stamp>)   │                   │
	│  │  2. per-line anchored substitution │                   │
	│  │     image: <repo>:* → <repo>:<tag> │                   │
	│  └────────────────────────────────────┘                   │
	└───────────────────────────────────────────────────────────┘

# Detection Rules

Locate scans once, line by line:

  - A top-level `services:` line opens the section; any other top-level
    key closes it. Image lines outside the section are never considered.
  - The first bare `name:` key inside the section fixes the indentation
    shared by sibling services. Deeper bare keys (build:, environment:)
    do not shift attribution.
  - The first `image:` line whose value carries a recognized repository
    decides the run: its service wins and scanning stops. Later matches
    are never considered.
  - Image lines that precede any service name cannot be attributed and
    are skipped.
  - If no image matches, a service literally named "n8n" is used as the
    fallback, without verifying its image. Its descriptor may then lack
    a repository (unrecognized image) or an image entirely; downstream
    stages warn and skip the tag rewrite in those cases.
  - Neither condition holds: Locate fails with ErrNoService, which is
    fatal to the run.

A recognized repository must be followed by a colon or end the reference.
"n8nio/n8n-custom" embeds the repository name but is a different image and
does not match; "mirror.example.com/n8nio/n8n" matches the short form, so
the rewrite targets the portion the substitution can actually reach.

# Mutation Rules

RewriteTag mirrors the tag-clobbering substitution this tool has always
performed:

  - Every line of the form `<indent>image:<spaces><repo>:<anything>` is
    rewritten to `<indent>image:<spaces><repo>:<tag>`. Indentation,
    spelling, and spacing survive byte-for-byte; everything after the
    repository's colon (old tag, trailing comment) is replaced.
  - Quoted references and tagless references do not match and are left
    exactly as written. The rewritten line count lets callers warn when
    nothing matched.
  - Applying the same tag twice is idempotent.

Before the document is touched, the whole file is copied to
`<name>.bak-<YYYYMMDDHHMMSS>` using the run's start time. The snapshot
must exist before the rewrite proceeds; a snapshot failure aborts the
mutation with the original untouched. Snapshots are never cleaned up.

# Usage

	doc, err := os.ReadFile("docker-compose.yml")
	if err != nil {
		return err
	}

	desc, err := stack.Locate(doc)
	if err != nil {
		return fmt.Errorf("failed to locate the n8n service: %w", err)
	}

	backup, changed, err := stack.RewriteTag(
		"docker-compose.yml", desc.Repository, "1.110.0", time.Now())
	if err != nil {
		return err
	}
	if changed == 0 {
		log.Warn("no image line matched; document left unchanged")
	}

# Integration Points

This package integrates with:

  - pkg/types: Produces the ServiceDescriptor threaded through the run
  - pkg/upgrade: Calls Locate once per run and RewriteTag during the
    mutation step, and decides the warn-and-skip cases

# See Also

  - pkg/upgrade for where detection and mutation slot into the pipeline
*/
package stack
