package fetchers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

// stubFetcher is a minimal Fetcher for factory tests.
type stubFetcher struct {
	fetcherType string
}

func (s *stubFetcher) Type() string                     { return s.fetcherType }
func (s *stubFetcher) Validate(_ context.Context) error { return nil }
func (s *stubFetcher) Close() error                     { return nil }

func (s *stubFetcher) Fetch(_ context.Context, relPath string) (*domain.RawSchema, error) {
	return &domain.RawSchema{Path: relPath}, nil
}

func stubBuilder(name string) driven.FetcherBuilder {
	return func(_ domain.SourceSpec, _ driven.FetcherOptions) (driven.Fetcher, error) {
		return &stubFetcher{fetcherType: name}, nil
	}
}

func TestFactory_Create(t *testing.T) {
	t.Run("creates a registered type", func(t *testing.T) {
		f := NewFactory()
		f.Register("stub", stubBuilder("stub"))

		fetcher, err := f.Create("stub", domain.SourceSpec{}, driven.FetcherOptions{})

		require.NoError(t, err)
		assert.Equal(t, "stub", fetcher.Type())
	})

	t.Run("unknown type returns ErrUnsupportedType", func(t *testing.T) {
		f := NewFactory()

		_, err := f.Create("carrier-pigeon", domain.SourceSpec{}, driven.FetcherOptions{})

		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})
}

func TestFactory_SupportedTypes(t *testing.T) {
	t.Run("empty factory supports nothing", func(t *testing.T) {
		assert.Empty(t, NewFactory().SupportedTypes())
	})

	t.Run("returns registered types sorted", func(t *testing.T) {
		f := NewFactory()
		f.Register("github", stubBuilder("github"))
		f.Register("filesystem", stubBuilder("filesystem"))
		f.Register("httpraw", stubBuilder("httpraw"))

		assert.Equal(t, []string{"filesystem", "github", "httpraw"}, f.SupportedTypes())
	})
}
