package domain

// RawSchema represents one unmodified schema file fetched from the
// upstream tree. It is the fetcher's output before sanitisation and is
// only ever read, never mutated.
type RawSchema struct {
	// Path is the slash-separated path relative to the upstream root.
	Path string

	// Branch is the branch or revision the file was fetched from.
	Branch string

	// Content is the raw file text.
	Content []byte
}

// SanitisedSchema is the sanitiser's output for one RawSchema,
// carrying the local destination it is written to.
type SanitisedSchema struct {
	// SourcePath is the upstream relative path the file came from.
	SourcePath string

	// DestPath is the vendor-root-relative destination, derived via
	// DestinationFor.
	DestPath string

	// Content is the sanitised file text.
	Content []byte
}
