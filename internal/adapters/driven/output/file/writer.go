// Package file provides the filesystem vendor writer.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.VendorWriter = (*Writer)(nil)

// Writer persists sanitised schemas under a vendor root directory,
// creating intermediate directories as needed.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at the given directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Root returns the vendor root directory.
func (w *Writer) Root() string {
	return w.root
}

// Write stores one sanitised schema at its destination. The write goes
// through a temp file and rename so a crash cannot leave a truncated
// vendor file behind.
func (w *Writer) Write(ctx context.Context, schema *domain.SanitisedSchema) error {
	if schema == nil {
		return domain.ErrInvalidInput
	}
	if err := domain.ValidateRelPath(schema.DestPath); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dest := filepath.Join(w.root, filepath.FromSlash(schema.DestPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create vendor directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(schema.Content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", schema.DestPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", schema.DestPath, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", schema.DestPath, err)
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", schema.DestPath, err)
	}
	return nil
}
