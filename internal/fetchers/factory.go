package fetchers

import (
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.FetcherFactory = (*Factory)(nil)

// Factory creates fetchers from configuration. Builders are keyed by
// fetcher type name.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]driven.FetcherBuilder
}

// NewFactory creates an empty fetcher factory.
func NewFactory() *Factory {
	return &Factory{
		builders: make(map[string]driven.FetcherBuilder),
	}
}

// Register adds a fetcher builder for the given type.
func (f *Factory) Register(fetcherType string, builder driven.FetcherBuilder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[fetcherType] = builder
}

// Create returns a Fetcher of the given type.
// Returns domain.ErrUnsupportedType if the type is unknown.
func (f *Factory) Create(fetcherType string, spec domain.SourceSpec, opts driven.FetcherOptions) (driven.Fetcher, error) {
	f.mu.RLock()
	builder, ok := f.builders[fetcherType]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: fetcher %q", domain.ErrUnsupportedType, fetcherType)
	}
	return builder(spec, opts)
}

// SupportedTypes returns all registered fetcher types, sorted.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
