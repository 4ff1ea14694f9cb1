package driven

import "github.com/custodia-labs/protovend-cli/internal/core/domain"

// VendorConfig is the resolved application configuration: the source
// spec plus everything the adapters need to be constructed.
type VendorConfig struct {
	// Spec describes what to vendor.
	Spec domain.SourceSpec

	// FetcherType selects the fetcher adapter ("httpraw", "github",
	// "filesystem").
	FetcherType string

	// VendorRoot is the local output directory.
	VendorRoot string

	// VendorImports are import paths that are deleted outright because
	// they only exist for the upstream toolchain.
	VendorImports []string

	// Fetcher carries adapter-level settings.
	Fetcher FetcherOptions
}

// ConfigStore loads the application configuration.
// Implementations handle persistence (e.g. TOML files) and defaults.
type ConfigStore interface {
	// Load reads the configuration, applying built-in defaults for
	// anything the stored file omits. A missing file yields the
	// defaults without error; a malformed file is an error.
	Load() (*VendorConfig, error)

	// Path returns the configuration file path.
	Path() string
}
