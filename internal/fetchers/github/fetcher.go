// Package github fetches schema files through the GitHub contents
// API. Unlike raw hosting it supports private mirrors via a personal
// access token.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

const (
	// Type is the fetcher type identifier.
	Type = "github"

	// DefaultTimeout is the default API request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves files via the GitHub contents API. The repository
// owner and name are parsed out of the spec's URL template, so the
// same configuration drives both this fetcher and httpraw.
type Fetcher struct {
	spec  domain.SourceSpec
	owner string
	repo  string
	gh    *gh.Client
}

// New creates a GitHub API fetcher for the given spec. An empty token
// gives anonymous access, which is enough for public repositories.
func New(spec domain.SourceSpec, opts driven.FetcherOptions) (*Fetcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	owner, repo, err := parseOwnerRepo(spec.URLTemplate)
	if err != nil {
		return nil, err
	}

	timeout := DefaultTimeout
	if opts.TimeoutSeconds > 0 {
		timeout = time.Duration(opts.TimeoutSeconds) * time.Second
	}

	var hc *http.Client
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = timeout

	return &Fetcher{
		spec:  spec,
		owner: owner,
		repo:  repo,
		gh:    gh.NewClient(hc),
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

// Validate checks the repository is visible with the configured
// credentials.
func (f *Fetcher) Validate(ctx context.Context) error {
	if _, _, err := f.gh.Repositories.Get(ctx, f.owner, f.repo); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetcherValidation, mapError("", err))
	}
	return nil
}

// Fetch retrieves one file by its upstream relative path.
func (f *Fetcher) Fetch(ctx context.Context, relPath string) (*domain.RawSchema, error) {
	if err := domain.ValidateRelPath(relPath); err != nil {
		return nil, err
	}

	file, _, _, err := f.gh.Repositories.GetContents(ctx, f.owner, f.repo, relPath,
		&gh.RepositoryContentGetOptions{Ref: f.spec.Branch})
	if err != nil {
		return nil, mapError(relPath, err)
	}
	if file == nil {
		// The path resolved to a directory listing.
		return nil, domain.NewFetchError(domain.FetchNotFound, relPath,
			fmt.Errorf("%s is not a file", relPath))
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}

	return &domain.RawSchema{
		Path:    relPath,
		Branch:  f.spec.Branch,
		Content: []byte(content),
	}, nil
}

// Close releases resources.
func (f *Fetcher) Close() error {
	return nil
}

// mapError converts go-github errors onto the fetch error taxonomy.
func mapError(relPath string, err error) error {
	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		switch errResp.Response.StatusCode {
		case http.StatusNotFound:
			return domain.NewFetchError(domain.FetchNotFound, relPath, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.NewFetchError(domain.FetchUnauthorized, relPath, err)
		}
	}

	var rlErr *gh.RateLimitError
	if errors.As(err, &rlErr) {
		return domain.NewFetchError(domain.FetchTransport, relPath,
			fmt.Errorf("rate limited until %s: %w", rlErr.Rate.Reset.Time.Format(time.RFC3339), err))
	}

	return domain.NewFetchError(domain.FetchTransport, relPath, err)
}

// parseOwnerRepo extracts the repository owner and name from the URL
// template: the two path segments immediately before {branch}.
func parseOwnerRepo(template string) (owner, repo string, err error) {
	u, err := url.Parse(template)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segs {
		if seg == domain.PlaceholderBranch {
			if i < 2 {
				break
			}
			return segs[i-2], segs[i-1], nil
		}
	}
	return "", "", fmt.Errorf("%w: cannot derive owner/repo from template %q",
		domain.ErrInvalidInput, template)
}
