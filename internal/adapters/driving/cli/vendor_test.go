package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driving"
)

// mockVendorer implements driving.Vendorer for testing.
type mockVendorer struct {
	report *driving.Report
	err    error
	runs   int
}

func (m *mockVendorer) Vendor(_ context.Context) (*driving.Report, error) {
	m.runs++
	return m.report, m.err
}

func (m *mockVendorer) Status(_ context.Context) (*driving.VendorStatus, error) {
	return &driving.VendorStatus{}, nil
}

// mockCLIFetcher implements driven.Fetcher for CLI tests.
type mockCLIFetcher struct {
	validateErr error
	closed      bool
}

func (m *mockCLIFetcher) Type() string                     { return "mock" }
func (m *mockCLIFetcher) Validate(_ context.Context) error { return m.validateErr }

func (m *mockCLIFetcher) Fetch(_ context.Context, relPath string) (*domain.RawSchema, error) {
	return &domain.RawSchema{Path: relPath}, nil
}

func (m *mockCLIFetcher) Close() error {
	m.closed = true
	return nil
}

func setupVendorTest(vendorer *mockVendorer, fetcher *mockCLIFetcher) (gotBranch *string, cleanup func()) {
	oldBuilder := buildServices
	branch := ""
	gotBranch = &branch

	buildServices = func(_, b string) (*Services, error) {
		branch = b
		return &Services{
			Vendorer:   vendorer,
			Fetcher:    fetcher,
			VendorRoot: "proto",
		}, nil
	}

	return gotBranch, func() {
		buildServices = oldBuilder
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func okReport() *driving.Report {
	return &driving.Report{
		RunID:  "run-1",
		Branch: "master",
		Vendored: []driving.VendoredFile{
			{SourcePath: "mvcc/mvccpb/kv.proto", DestPath: "mvccpb/kv.proto", Bytes: 42},
		},
	}
}

func TestVendorCmd_Use(t *testing.T) {
	assert.Equal(t, "vendor [branch]", vendorCmd.Use)
}

func TestVendorCmd_Short(t *testing.T) {
	assert.Equal(t, "Fetch and sanitise the configured schema files", vendorCmd.Short)
}

func TestVendorCmd_ExecutesWithoutArgs(t *testing.T) {
	vendorer := &mockVendorer{report: okReport()}
	fetcher := &mockCLIFetcher{}
	gotBranch, cleanup := setupVendorTest(vendorer, fetcher)
	defer cleanup()

	out, _, err := execute(t, "vendor")

	require.NoError(t, err)
	assert.Equal(t, 1, vendorer.runs)
	assert.Empty(t, *gotBranch)
	assert.Contains(t, out, "mvccpb/kv.proto")
	assert.Contains(t, out, "Vendored 1 files from branch master (0 failed).")
	assert.True(t, fetcher.closed)
}

func TestVendorCmd_PassesBranchArgument(t *testing.T) {
	vendorer := &mockVendorer{report: okReport()}
	gotBranch, cleanup := setupVendorTest(vendorer, &mockCLIFetcher{})
	defer cleanup()

	_, _, err := execute(t, "vendor", "release-3.5")

	require.NoError(t, err)
	assert.Equal(t, "release-3.5", *gotBranch)
}

func TestVendorCmd_ReportsFailures(t *testing.T) {
	report := okReport()
	report.Failures = []driving.Failure{
		{
			SourcePath: "auth/authpb/auth.proto",
			Err: domain.NewFetchError(
				domain.FetchNotFound, "auth/authpb/auth.proto", nil),
		},
	}
	vendorer := &mockVendorer{report: report, err: assert.AnError}
	_, cleanup := setupVendorTest(vendorer, &mockCLIFetcher{})
	defer cleanup()

	out, errOut, err := execute(t, "vendor")

	require.Error(t, err)
	assert.Contains(t, errOut, "FAILED auth/authpb/auth.proto")
	assert.Contains(t, out, "(1 failed)")
}

func TestVendorCmd_WatchRequiresWatcherFetcher(t *testing.T) {
	vendorer := &mockVendorer{report: okReport()}
	_, cleanup := setupVendorTest(vendorer, &mockCLIFetcher{})
	defer cleanup()
	defer func() { vendorWatch = false }()

	_, _, err := execute(t, "vendor", "--watch")

	assert.ErrorIs(t, err, domain.ErrWatchUnsupported)
}

func TestVendorCmd_FailsWithoutBuilder(t *testing.T) {
	oldBuilder := buildServices
	buildServices = nil
	defer func() { buildServices = oldBuilder }()

	_, _, err := execute(t, "vendor")

	assert.Error(t, err)
}
