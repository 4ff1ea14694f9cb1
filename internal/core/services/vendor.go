// Package services implements the driving ports: the use cases the
// CLI invokes.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driving"
	"github.com/custodia-labs/protovend-cli/internal/logger"
)

// Ensure VendorOrchestrator implements the interface.
var _ driving.Vendorer = (*VendorOrchestrator)(nil)

// VendorOrchestrator coordinates one vendoring run: for each
// configured schema path it fetches, sanitises and writes, in listed
// order. Entries are independent; a failed fetch is recorded and the
// run moves on.
type VendorOrchestrator struct {
	spec      domain.SourceSpec
	fetcher   driven.Fetcher
	sanitiser driven.Sanitiser
	writer    driven.VendorWriter

	// Status tracking
	mu     sync.RWMutex
	status *driving.VendorStatus
}

// NewVendorOrchestrator creates a vendor orchestrator.
func NewVendorOrchestrator(
	spec domain.SourceSpec,
	fetcher driven.Fetcher,
	sanitiser driven.Sanitiser,
	writer driven.VendorWriter,
) *VendorOrchestrator {
	return &VendorOrchestrator{
		spec:      spec,
		fetcher:   fetcher,
		sanitiser: sanitiser,
		writer:    writer,
	}
}

// Vendor processes every configured schema path. The returned report
// is always non-nil; the error is non-nil iff at least one entry
// failed, and joins every per-entry failure.
func (o *VendorOrchestrator) Vendor(ctx context.Context) (*driving.Report, error) {
	report := &driving.Report{
		RunID:  uuid.New().String(),
		Branch: o.spec.Branch,
	}

	status := &driving.VendorStatus{Running: true}
	o.setStatus(status)
	defer o.clearStatus()

	logger.Info("Starting vendor run %s (branch %s, %d files)",
		report.RunID, o.spec.Branch, len(o.spec.Paths))

	var errs []error
	for _, relPath := range o.spec.Paths {
		if err := ctx.Err(); err != nil {
			// Stop issuing new fetches; what was vendored stays.
			return report, err
		}

		vendored, err := o.vendorOne(ctx, relPath)
		if err != nil {
			logger.Warn("Failed to vendor %s: %v", relPath, err)
			report.Failures = append(report.Failures, driving.Failure{
				SourcePath: relPath,
				Err:        err,
			})
			errs = append(errs, fmt.Errorf("vendor %s: %w", relPath, err))
			o.bumpStatus(status, false)
			continue
		}

		report.Vendored = append(report.Vendored, *vendored)
		o.bumpStatus(status, true)
	}

	logger.Info("Vendor run complete: %d files, %d errors",
		len(report.Vendored), len(report.Failures))

	if len(errs) > 0 {
		return report, errors.Join(errs...)
	}
	return report, nil
}

// Status returns live progress for the current run.
func (o *VendorOrchestrator) Status(_ context.Context) (*driving.VendorStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.status == nil {
		return &driving.VendorStatus{}, nil
	}
	// Return a copy to avoid race conditions.
	return &driving.VendorStatus{
		Running:        o.status.Running,
		FilesProcessed: o.status.FilesProcessed,
		ErrorCount:     o.status.ErrorCount,
	}, nil
}

// vendorOne runs the fetch, sanitise, write pipeline for one entry.
// Nothing is written when the fetch fails, so a prior vendored copy,
// if present, is left untouched.
func (o *VendorOrchestrator) vendorOne(ctx context.Context, relPath string) (*driving.VendoredFile, error) {
	logger.Debug("Fetching: %s", o.spec.Location(relPath))

	raw, err := o.fetcher.Fetch(ctx, relPath)
	if err != nil {
		return nil, err
	}

	sanitised := &domain.SanitisedSchema{
		SourcePath: relPath,
		DestPath:   domain.DestinationFor(relPath),
		Content:    []byte(o.sanitiser.Sanitise(string(raw.Content))),
	}

	logger.Debug("Writing: %s (%d -> %d bytes)",
		sanitised.DestPath, len(raw.Content), len(sanitised.Content))

	if err := o.writer.Write(ctx, sanitised); err != nil {
		return nil, err
	}

	return &driving.VendoredFile{
		SourcePath: relPath,
		DestPath:   sanitised.DestPath,
		Bytes:      len(sanitised.Content),
	}, nil
}

// setStatus publishes the status for the active run.
func (o *VendorOrchestrator) setStatus(status *driving.VendorStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = status
}

// clearStatus marks the run finished.
func (o *VendorOrchestrator) clearStatus() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != nil {
		o.status.Running = false
	}
}

// bumpStatus updates progress counters under the lock.
func (o *VendorOrchestrator) bumpStatus(status *driving.VendorStatus, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	status.FilesProcessed++
	if !ok {
		status.ErrorCount++
	}
}
