// Package httpraw fetches schema files over plain HTTP from raw file
// hosting (raw.githubusercontent.com and compatible mirrors).
package httpraw

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

const (
	// Type is the fetcher type identifier.
	Type = "httpraw"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// ThrottleRate is the proactive request rate against the raw host.
	// Raw hosting is unauthenticated, so stay well clear of its limits.
	ThrottleRate = 2.0

	// maxBodySize caps a single schema file read. Upstream schema
	// files are a few hundred KB at most.
	maxBodySize = 4 << 20
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw files by substituting branch and path into the
// spec's URL template. One request per file, no retries.
type Fetcher struct {
	spec    domain.SourceSpec
	client  *http.Client
	limiter *rate.Limiter
}

// New creates an HTTP raw-file fetcher for the given spec.
func New(spec domain.SourceSpec, opts driven.FetcherOptions) (*Fetcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	timeout := DefaultTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}

	return &Fetcher{
		spec:    spec,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(ThrottleRate), 1),
	}, nil
}

// Builder adapts New to the factory's builder signature.
func Builder(spec domain.SourceSpec, opts driven.FetcherOptions) (driven.Fetcher, error) {
	return New(spec, opts)
}

// Type returns the fetcher type identifier.
func (f *Fetcher) Type() string {
	return Type
}

// Validate checks the first configured path is reachable.
func (f *Fetcher) Validate(ctx context.Context) error {
	if _, err := f.Fetch(ctx, f.spec.Paths[0]); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetcherValidation, err)
	}
	return nil
}

// Fetch retrieves one file by its upstream relative path.
func (f *Fetcher) Fetch(ctx context.Context, relPath string) (*domain.RawSchema, error) {
	if err := domain.ValidateRelPath(relPath); err != nil {
		return nil, err
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}

	url := f.spec.Location(relPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		// Connectivity failures and client timeouts both land here.
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode, relPath, url); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}

	return &domain.RawSchema{
		Path:    relPath,
		Branch:  f.spec.Branch,
		Content: content,
	}, nil
}

// Close releases resources.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// classifyStatus maps an HTTP status onto the fetch error taxonomy.
// 2xx is success; 404 is not-found; 401/403 are auth rejections;
// everything else is a transport-level failure.
func classifyStatus(status int, relPath, url string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusNotFound:
		return domain.NewFetchError(domain.FetchNotFound, relPath,
			fmt.Errorf("%s returned 404", url))
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return domain.NewFetchError(domain.FetchUnauthorized, relPath,
			fmt.Errorf("%s returned %d", url, status))
	default:
		return domain.NewFetchError(domain.FetchTransport, relPath,
			fmt.Errorf("%s returned %d", url, status))
	}
}
