package driving

import "context"

// Vendorer runs the vendoring pipeline: fetch, sanitise, write.
type Vendorer interface {
	// Vendor processes every configured schema path in listed order.
	// It does not fail fast: a fetch failure is recorded in the report
	// and the run continues with the next entry. The returned error is
	// non-nil iff at least one entry failed.
	Vendor(ctx context.Context) (*Report, error)

	// Status returns live progress for the current run, or an idle
	// status when no run is active.
	Status(ctx context.Context) (*VendorStatus, error)
}

// Report summarises one vendoring run.
type Report struct {
	// RunID uniquely identifies the run in logs and output.
	RunID string

	// Branch is the branch the run fetched from.
	Branch string

	// Vendored lists successfully written files in processing order.
	Vendored []VendoredFile

	// Failures lists entries that could not be fetched, in processing
	// order. Nothing was written for these.
	Failures []Failure
}

// VendoredFile records one successfully vendored schema.
type VendoredFile struct {
	// SourcePath is the upstream relative path.
	SourcePath string

	// DestPath is where the sanitised copy was written, relative to
	// the vendor root.
	DestPath string

	// Bytes is the size of the sanitised output.
	Bytes int
}

// Failure records one entry that could not be vendored.
type Failure struct {
	// SourcePath is the upstream relative path that failed.
	SourcePath string

	// Err is the underlying fetch error.
	Err error
}

// VendorStatus reports progress of an in-flight run.
type VendorStatus struct {
	Running        bool
	FilesProcessed int
	ErrorCount     int
}
