// Package domain defines the core business entities for protovend.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SourceSpec: The immutable description of what to vendor
//   - RawSchema: An unmodified schema file fetched from upstream
//   - SanitisedSchema: A sanitised schema ready to be written
//   - FetchError: The taxonomy of retrieval failures
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
