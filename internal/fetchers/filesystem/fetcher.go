// Package filesystem fetches schema files from a local checkout of
// the upstream repository. It is also the only fetcher that can watch
// for changes, which backs the CLI's --watch mode.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

// Type is the fetcher type identifier.
const Type = "filesystem"

// Ensure Fetcher implements the interfaces.
var (
	_ driven.Fetcher = (*Fetcher)(nil)
	_ driven.Watcher = (*Fetcher)(nil)
)

// Fetcher reads schema files relative to a local checkout root. The
// spec's branch is recorded on fetched schemas but the checkout is
// authoritative for what that branch contains.
type Fetcher struct {
	spec domain.SourceSpec
	root string
}

// New creates a filesystem fetcher rooted at opts.LocalDir.
func New(spec domain.SourceSpec, opts driven.FetcherOptions) (*Fetcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if opts.LocalDir == "" {
		return nil, fmt.Errorf("%w: filesystem fetcher requires a local source directory",
			domain.ErrInvalidInput)
	}

	return &Fetcher{spec: spec, root: opts.LocalDir}, nil
}

// Builder adapts New to the factory's builder signature.
func Builder(spec domain.SourceSpec, opts driven.FetcherOptions) (driven.Fetcher, error) {
	return New(spec, opts)
}

// Type returns the fetcher type identifier.
func (f *Fetcher) Type() string {
	return Type
}

// Validate checks the checkout root exists and is a directory.
func (f *Fetcher) Validate(_ context.Context) error {
	info, err := os.Stat(f.root)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFetcherValidation, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrFetcherValidation, f.root)
	}
	return nil
}

// Fetch reads one file by its upstream relative path.
func (f *Fetcher) Fetch(ctx context.Context, relPath string) (*domain.RawSchema, error) {
	if err := domain.ValidateRelPath(relPath); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewFetchError(domain.FetchTransport, relPath, err)
	}

	content, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, classifyFSError(relPath, err)
	}

	return &domain.RawSchema{
		Path:    relPath,
		Branch:  f.spec.Branch,
		Content: content,
	}, nil
}

// Watch emits the relative path of any configured schema file that is
// created or modified under the checkout, until ctx is cancelled.
func (f *Fetcher) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch each parent directory once; fsnotify watches directories,
	// not individual files reliably across editors.
	byAbsPath := make(map[string]string, len(f.spec.Paths))
	dirs := make(map[string]struct{})
	for _, relPath := range f.spec.Paths {
		abs := filepath.Join(f.root, filepath.FromSlash(relPath))
		byAbsPath[abs] = relPath
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	changes := make(chan string)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				relPath, tracked := byAbsPath[filepath.Clean(event.Name)]
				if !tracked {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case changes <- relPath:
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}

// Close releases resources.
func (f *Fetcher) Close() error {
	return nil
}

// classifyFSError maps filesystem errors onto the fetch taxonomy.
func classifyFSError(relPath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.NewFetchError(domain.FetchNotFound, relPath, err)
	case errors.Is(err, fs.ErrPermission):
		return domain.NewFetchError(domain.FetchUnauthorized, relPath, err)
	default:
		return domain.NewFetchError(domain.FetchTransport, relPath, err)
	}
}
