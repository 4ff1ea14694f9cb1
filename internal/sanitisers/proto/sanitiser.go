package proto

import (
	"path"
	"regexp"
	"strings"

	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

// Ensure Sanitiser implements the interface.
var _ driven.Sanitiser = (*Sanitiser)(nil)

// DefaultVendorImports are the import paths deleted outright: they
// name extension files that only the upstream code generator
// understands.
var DefaultVendorImports = []string{
	"gogoproto/gogo.proto",
	"google/api/annotations.proto",
}

var (
	// importLineRe matches a whole import statement, modulo
	// surrounding whitespace. Group 1 is the quoted path.
	importLineRe = regexp.MustCompile(`^\s*import\s+(?:public\s+|weak\s+)?"([^"]*)"\s*;\s*$`)

	// httpOptionRe matches the opening line of a gRPC-gateway HTTP
	// binding option. The block it opens runs until a literal "};".
	httpOptionRe = regexp.MustCompile(`^\s*option\s*\(\s*google\.api\.http\s*\)\s*=\s*\{`)
)

// state tracks whether the current line sits inside a dropped option
// block. It is local to one Sanitise call and never escapes it.
type state int

const (
	stateNormal state = iota
	stateInBlock
)

// Sanitiser strips vendor-only proto syntax so the output compiles
// with a toolchain that lacks gRPC-gateway and gogoproto extensions.
//
// Three rewrites are applied in one pass over the document:
//
//   - imports of known vendor-only files are deleted
//   - remaining import paths are flattened to their base name, since
//     the vendored files all land in one directory tree without the
//     upstream layout
//   - option (google.api.http) = { ... }; blocks are deleted whole,
//     however many lines they span
//
// Everything else passes through byte-identical, line terminators
// included.
type Sanitiser struct {
	vendorImports map[string]struct{}
}

// New creates a proto sanitiser deleting the given vendor-only
// imports. With no arguments the default set is used.
func New(vendorImports ...string) *Sanitiser {
	if len(vendorImports) == 0 {
		vendorImports = DefaultVendorImports
	}
	set := make(map[string]struct{}, len(vendorImports))
	for _, imp := range vendorImports {
		set[imp] = struct{}{}
	}
	return &Sanitiser{vendorImports: set}
}

// Sanitise transforms one document. It is deterministic, total and
// idempotent on its own output.
func (s *Sanitiser) Sanitise(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	st := stateNormal
	for _, line := range splitLines(text) {
		body, term := splitTerminator(line)

		if st == stateInBlock {
			// Everything inside the block is dropped, the closing
			// line included.
			if strings.Contains(body, "};") {
				st = stateNormal
			}
			continue
		}

		// The import and option triggers are checked independently;
		// they are disjoint by construction but nothing here relies
		// on that.
		vendorImport := false
		if m := importLineRe.FindStringSubmatch(body); m != nil {
			_, vendorImport = s.vendorImports[m[1]]
		}

		if loc := httpOptionRe.FindStringIndex(body); loc != nil {
			// One open/close pair per trigger; a "};" on the opening
			// line closes the block immediately. No nesting support.
			if !strings.Contains(body[loc[1]:], "};") {
				st = stateInBlock
			}
			continue
		}

		if vendorImport {
			continue
		}

		if m := importLineRe.FindStringSubmatchIndex(body); m != nil {
			quoted := body[m[2]:m[3]]
			if strings.Contains(quoted, "/") {
				b.WriteString(body[:m[2]])
				b.WriteString(path.Base(quoted))
				b.WriteString(body[m[3]:])
				b.WriteString(term)
				continue
			}
		}

		b.WriteString(line)
	}

	return b.String()
}

// splitLines splits text into lines with their terminators preserved.
// The final element has no terminator if the text does not end in one.
func splitLines(text string) []string {
	var lines []string
	for start := 0; start < len(text); {
		i := strings.IndexByte(text[start:], '\n')
		if i < 0 {
			lines = append(lines, text[start:])
			break
		}
		lines = append(lines, text[start:start+i+1])
		start += i + 1
	}
	return lines
}

// splitTerminator separates a line from its terminator ("\r\n", "\n"
// or none).
func splitTerminator(line string) (body, term string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	default:
		return line, ""
	}
}
