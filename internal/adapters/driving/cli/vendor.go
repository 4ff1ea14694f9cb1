package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driving"
)

var vendorWatch bool

var vendorCmd = &cobra.Command{
	Use:   "vendor [branch]",
	Short: "Fetch and sanitise the configured schema files",
	Long: `Runs the vendoring pipeline: each configured schema file is fetched
from the upstream tree, sanitised, and written under the vendor root.
If a branch is provided, it overrides the configured default branch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVendor,
}

func init() {
	vendorCmd.Flags().BoolVarP(&vendorWatch, "watch", "w", false,
		"re-vendor whenever the upstream files change (filesystem fetcher only)")
	rootCmd.AddCommand(vendorCmd)
}

func runVendor(cmd *cobra.Command, args []string) error {
	if buildServices == nil {
		return errors.New("vendor service not configured")
	}

	branch := ""
	if len(args) > 0 {
		branch = args[0]
	}

	svcs, err := buildServices(configPath, branch)
	if err != nil {
		return err
	}
	defer svcs.Fetcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := vendorOnce(ctx, cmd, svcs); err != nil {
		return err
	}

	if vendorWatch {
		return watchAndRevendor(ctx, cmd, svcs)
	}
	return nil
}

// vendorOnce runs one pipeline pass and prints the report.
func vendorOnce(ctx context.Context, cmd *cobra.Command, svcs *Services) error {
	cmd.Printf("Vendoring into %s...\n", svcs.VendorRoot)

	report, err := svcs.Vendorer.Vendor(ctx)
	printReport(cmd, report)

	if err != nil {
		return fmt.Errorf("vendor failed: %w", err)
	}
	return nil
}

// printReport lists every outcome, failures last.
func printReport(cmd *cobra.Command, report *driving.Report) {
	if report == nil {
		return
	}
	for _, f := range report.Vendored {
		cmd.Printf("  %s -> %s (%d bytes)\n", f.SourcePath, f.DestPath, f.Bytes)
	}
	for _, f := range report.Failures {
		cmd.PrintErrf("  FAILED %s: %v\n", f.SourcePath, f.Err)
	}
	cmd.Printf("Vendored %d files from branch %s (%d failed).\n",
		len(report.Vendored), report.Branch, len(report.Failures))
}

// watchAndRevendor re-runs the pipeline every time a tracked upstream
// file changes, until interrupted.
func watchAndRevendor(ctx context.Context, cmd *cobra.Command, svcs *Services) error {
	watcher, ok := svcs.Fetcher.(driven.Watcher)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrWatchUnsupported, svcs.Fetcher.Type())
	}

	changes, err := watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	cmd.Println("Watching for upstream changes (interrupt to stop)...")
	for {
		select {
		case <-ctx.Done():
			return nil
		case relPath, open := <-changes:
			if !open {
				return nil
			}
			cmd.Printf("Change detected: %s\n", relPath)
			if err := vendorOnce(ctx, cmd, svcs); err != nil {
				// Keep watching; the next change may succeed.
				cmd.PrintErrf("re-vendor failed: %v\n", err)
			}
		}
	}
}
