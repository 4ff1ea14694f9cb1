package driven

// Sanitiser rewrites raw schema text so it compiles without
// vendor-only extensions. Implementations must be pure: same input,
// same output, no I/O, no state shared across calls.
type Sanitiser interface {
	// Sanitise transforms one document. It is total over line-based
	// text and never fails.
	Sanitise(text string) string
}
