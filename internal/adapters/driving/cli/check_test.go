package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCmd_Use(t *testing.T) {
	assert.Equal(t, "check [branch]", checkCmd.Use)
}

func TestCheckCmd_ReportsReadyFetcher(t *testing.T) {
	fetcher := &mockCLIFetcher{}
	_, cleanup := setupVendorTest(&mockVendorer{}, fetcher)
	defer cleanup()

	out, _, err := execute(t, "check")

	require.NoError(t, err)
	assert.Contains(t, out, "Fetcher mock is ready.")
	assert.True(t, fetcher.closed)
}

func TestCheckCmd_SurfacesValidationFailure(t *testing.T) {
	fetcher := &mockCLIFetcher{validateErr: assert.AnError}
	_, cleanup := setupVendorTest(&mockVendorer{}, fetcher)
	defer cleanup()

	_, _, err := execute(t, "check")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "check failed")
}

func TestCheckCmd_PassesBranchArgument(t *testing.T) {
	gotBranch, cleanup := setupVendorTest(&mockVendorer{}, &mockCLIFetcher{})
	defer cleanup()

	_, _, err := execute(t, "check", "release-3.4")

	require.NoError(t, err)
	assert.Equal(t, "release-3.4", *gotBranch)
}
