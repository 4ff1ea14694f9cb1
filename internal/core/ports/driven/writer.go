package driven

import (
	"context"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
)

// VendorWriter persists sanitised schemas under the local vendor root.
type VendorWriter interface {
	// Write stores one sanitised schema at its DestPath, creating
	// intermediate directories as needed. A prior copy at the same
	// destination is replaced in full; partial writes must not be
	// observable.
	Write(ctx context.Context, schema *domain.SanitisedSchema) error

	// Root returns the vendor root directory.
	Root() string
}
