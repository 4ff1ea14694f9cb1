// Package cli implements the protovend command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driving"
	"github.com/custodia-labs/protovend-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// Services bundles everything one vendoring run needs. The builder is
// injected from main so commands stay testable with mocks.
type Services struct {
	Vendorer   driving.Vendorer
	Fetcher    driven.Fetcher
	VendorRoot string
}

// ServicesBuilder constructs the services for one run. branch is empty
// when the user did not select one, in which case the configured
// default applies.
type ServicesBuilder func(configPath, branch string) (*Services, error)

var (
	buildServices ServicesBuilder

	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "protovend",
	Short: "Vendor upstream schema files into the local tree",
	Long: `protovend fetches a configured set of schema files from an upstream
source tree and vendors sanitised copies into the local project,
stripping vendor-only extensions the local toolchain cannot compile.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose logging to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to the configuration file (default .protovend.toml)")
}

// SetServicesBuilder injects the builder the commands use.
func SetServicesBuilder(builder ServicesBuilder) {
	buildServices = builder
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
