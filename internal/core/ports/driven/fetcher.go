package driven

import (
	"context"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
)

// Fetcher retrieves raw schema files from an upstream source tree.
// Each fetcher type (httpraw, github, filesystem) implements this
// interface.
type Fetcher interface {
	// Type returns the fetcher type identifier.
	Type() string

	// Validate checks if the fetcher is properly configured and can
	// reach its source. For remote fetchers this makes a lightweight
	// request; for filesystem it checks the root path is readable.
	// Returns nil if ready to fetch, error describing the problem
	// otherwise.
	Validate(ctx context.Context) error

	// Fetch retrieves one file by its upstream relative path.
	// Exactly one attempt is made; retry policy belongs to the caller.
	// Failures are reported as *domain.FetchError with the kind set to
	// NotFound, Unauthorized or Transport.
	Fetch(ctx context.Context, relPath string) (*domain.RawSchema, error)

	// Close releases resources.
	Close() error
}

// Watcher is implemented by fetchers that can signal upstream changes.
// Each event names the upstream relative path that changed.
type Watcher interface {
	// Watch emits changed relative paths until ctx is cancelled.
	// Fetchers without watch support are simply not Watchers; callers
	// should fall back to domain.ErrWatchUnsupported.
	Watch(ctx context.Context) (<-chan string, error)
}

// FetcherBuilder creates a Fetcher from a source spec and the
// fetcher-specific options the config store resolved.
type FetcherBuilder func(spec domain.SourceSpec, opts FetcherOptions) (Fetcher, error)

// FetcherOptions carries adapter-level settings that are not part of
// the immutable SourceSpec.
type FetcherOptions struct {
	// TimeoutSeconds bounds one fetch attempt. Zero means the adapter
	// default.
	TimeoutSeconds int

	// Token authenticates against private mirrors. Empty for
	// anonymous access.
	Token string

	// LocalDir is the checkout root for the filesystem fetcher.
	LocalDir string
}

// FetcherFactory creates fetchers from configuration.
// It maintains a registry of fetcher types and their builders.
type FetcherFactory interface {
	// Create returns a Fetcher of the given type.
	// Returns domain.ErrUnsupportedType if the type is unknown.
	Create(fetcherType string, spec domain.SourceSpec, opts FetcherOptions) (Fetcher, error)

	// Register adds a fetcher builder for the given type.
	Register(fetcherType string, builder FetcherBuilder)

	// SupportedTypes returns all registered fetcher types.
	SupportedTypes() []string
}
