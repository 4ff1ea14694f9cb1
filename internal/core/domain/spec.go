package domain

import (
	"fmt"
	"path"
	"strings"
)

// Template placeholders substituted by fetchers when forming a
// concrete remote location.
const (
	PlaceholderBranch = "{branch}"
	PlaceholderPath   = "{path}"
)

// SourceSpec describes what to vendor: where the upstream tree lives,
// which branch to read, and the ordered list of schema files to pull.
// It is immutable for the duration of a run.
type SourceSpec struct {
	// URLTemplate is the remote location pattern. It must contain the
	// {branch} and {path} placeholders.
	URLTemplate string

	// Branch is the branch or revision to fetch from.
	Branch string

	// Paths are slash-separated paths of schema files relative to the
	// upstream repository root, vendored in listed order.
	Paths []string
}

// Validate checks the spec before a run starts. The branch token is
// only checked for non-emptiness; the remote is authoritative for
// branch naming.
func (s *SourceSpec) Validate() error {
	if s.URLTemplate == "" {
		return fmt.Errorf("%w: empty URL template", ErrInvalidInput)
	}
	if !strings.Contains(s.URLTemplate, PlaceholderBranch) || !strings.Contains(s.URLTemplate, PlaceholderPath) {
		return fmt.Errorf("%w: URL template must contain %s and %s",
			ErrInvalidInput, PlaceholderBranch, PlaceholderPath)
	}
	if s.Branch == "" {
		return fmt.Errorf("%w: empty branch", ErrInvalidInput)
	}
	if len(s.Paths) == 0 {
		return fmt.Errorf("%w: no schema paths configured", ErrInvalidInput)
	}
	for _, p := range s.Paths {
		if err := ValidateRelPath(p); err != nil {
			return err
		}
	}
	return nil
}

// Location substitutes branch and relative path into the template.
func (s *SourceSpec) Location(relPath string) string {
	loc := strings.ReplaceAll(s.URLTemplate, PlaceholderBranch, s.Branch)
	return strings.ReplaceAll(loc, PlaceholderPath, relPath)
}

// ValidateRelPath rejects paths that could escape the upstream tree or
// the local vendor root.
func ValidateRelPath(relPath string) error {
	if relPath == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if strings.HasPrefix(relPath, "/") {
		return fmt.Errorf("%w: %q is absolute", ErrInvalidPath, relPath)
	}
	for _, seg := range strings.Split(relPath, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q contains a parent segment", ErrInvalidPath, relPath)
		}
	}
	return nil
}

// DestinationFor maps an upstream relative path to its local vendor
// path. The top-level category segment is dropped and the remainder is
// kept as-is, so "etcdserver/etcdserverpb/rpc.proto" lands at
// "etcdserverpb/rpc.proto" under the vendor root. A path with a single
// segment keeps just its base name.
func DestinationFor(relPath string) string {
	clean := path.Clean(relPath)
	segs := strings.Split(clean, "/")
	if len(segs) <= 1 {
		return clean
	}
	return path.Join(segs[1:]...)
}
