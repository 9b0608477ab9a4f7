package stack

import (
	"errors"
	"strings"

	"github.com/cuemby/n8nup/pkg/types"
)

// ErrNoService is returned by Locate when neither a recognized image nor a
// service named DefaultService exists in the document.
var ErrNoService = errors.New("could not detect the n8n service")

// scanState tracks where the line scanner is inside the document.
type scanState int

const (
	stateOutside  scanState = iota // before services: or after the section ended
	stateServices                  // inside the top-level services: section
)

// Locate scans doc for the n8n service and derives its descriptor in a
// single pass. The first service whose declared image matches a recognized
// repository wins and scanning stops there; later candidates are never
// considered. When no image matches, a service literally named
// DefaultService is used instead, without verifying its image.
//
// The scanner understands only the narrow compose shape this tool targets:
// one document, a top-level services: section, service names exactly one
// indentation level below it, and image: declarations nested beneath each
// service. Anchors, multi-document files, and deeper service nesting are
// out of scope.
func Locate(doc []byte) (*types.ServiceDescriptor, error) {
	state := stateOutside
	serviceIndent := -1 // fixed by the first service line inside the section
	current := ""

	var fallback *types.ServiceDescriptor

	for _, raw := range strings.Split(string(doc), "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		indent := indentOf(line)
		if indent == 0 {
			// A top-level key either opens the services section or ends it.
			if trimmed == "services:" {
				state = stateServices
				serviceIndent = -1
				current = ""
			} else {
				state = stateOutside
			}
			continue
		}

		if state != stateServices {
			continue
		}

		if name, ok := serviceKey(trimmed); ok && (serviceIndent == -1 || indent == serviceIndent) {
			serviceIndent = indent
			current = name
			if name == DefaultService && fallback == nil {
				fallback = &types.ServiceDescriptor{Name: DefaultService}
			}
			continue
		}

		value, ok := imageValue(trimmed)
		if !ok || serviceIndent == -1 || indent <= serviceIndent {
			// Image lines that cannot be attributed to a service are
			// skipped, including ones appearing before any service name.
			continue
		}

		if repo, tag, matched := matchRepository(value); matched {
			return &types.ServiceDescriptor{
				Name:       current,
				Image:      value,
				Repository: repo,
				Tag:        tag,
			}, nil
		}

		if current == DefaultService && fallback != nil && fallback.Image == "" {
			fallback.Image = value
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrNoService
}

// indentOf counts leading spaces. YAML forbids tabs for indentation, so a
// tab-led line counts as top level.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// serviceKey reports whether a trimmed line introduces a service: a bare
// `name:` mapping key with nothing but an optional comment after the colon.
func serviceKey(trimmed string) (string, bool) {
	idx := strings.IndexByte(trimmed, ':')
	if idx <= 0 {
		return "", false
	}
	name := trimmed[:idx]
	if strings.ContainsAny(name, " \t") {
		return "", false
	}
	rest := strings.TrimSpace(trimmed[idx+1:])
	if rest != "" && !strings.HasPrefix(rest, "#") {
		return "", false
	}
	return name, true
}

// imageValue extracts the image reference from a trimmed `image:` line,
// stripping surrounding quotes and a trailing comment.
func imageValue(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "image:") {
		return "", false
	}
	value := strings.TrimSpace(strings.TrimPrefix(trimmed, "image:"))
	if i := strings.IndexByte(value, '#'); i > 0 && (value[i-1] == ' ' || value[i-1] == '\t') {
		value = strings.TrimSpace(value[:i])
	}
	value = strings.Trim(value, `"'`)
	return value, value != ""
}

// matchRepository returns the recognized repository contained in value and
// the tag declared after it. The repository must be followed by a colon or
// end the reference, so names that merely embed a recognized repository
// (n8nio/n8n-custom) do not match.
func matchRepository(value string) (repo, tag string, ok bool) {
	for _, candidate := range RecognizedRepositories {
		idx := strings.Index(value, candidate)
		if idx < 0 {
			continue
		}
		rest := value[idx+len(candidate):]
		if rest == "" {
			return candidate, "", true
		}
		if strings.HasPrefix(rest, ":") {
			return candidate, rest[1:], true
		}
	}
	return "", "", false
}
