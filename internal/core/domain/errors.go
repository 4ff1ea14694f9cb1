package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown fetcher type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidPath indicates a relative path that escapes the source
	// tree (absolute, empty, or containing ".." segments).
	ErrInvalidPath = errors.New("invalid relative path")

	// ErrFetcherValidation indicates fetcher validation failed.
	// The source is misconfigured or credentials are invalid.
	ErrFetcherValidation = errors.New("fetcher validation failed")

	// ErrWatchUnsupported indicates the configured fetcher cannot
	// watch for upstream changes.
	ErrWatchUnsupported = errors.New("watch not supported by this fetcher")
)

// FetchKind classifies retrieval failures.
type FetchKind int

const (
	// FetchTransport covers connectivity problems, timeouts and any
	// remote response that is neither success, not-found nor an auth
	// rejection.
	FetchTransport FetchKind = iota

	// FetchNotFound means the remote reported no such file at the
	// requested branch and path.
	FetchNotFound

	// FetchUnauthorized means the remote required credentials and
	// rejected the ones presented (or their absence).
	FetchUnauthorized
)

// String returns the kind name for error messages.
func (k FetchKind) String() string {
	switch k {
	case FetchNotFound:
		return "not found"
	case FetchUnauthorized:
		return "unauthorized"
	default:
		return "transport"
	}
}

// FetchError is the single error type fetchers return to the core.
// Kind carries the classification; Err carries the adapter-level cause.
type FetchError struct {
	Kind FetchKind
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Path, e.Kind)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError builds a classified fetch error for a relative path.
func NewFetchError(kind FetchKind, path string, err error) *FetchError {
	return &FetchError{Kind: kind, Path: path, Err: err}
}

// IsNotFound checks if the error indicates the file was absent upstream.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchNotFound
}

// IsTransport checks if the error indicates a connectivity failure.
func IsTransport(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchTransport
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchUnauthorized
}
