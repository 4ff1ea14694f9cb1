package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/protovend-cli/internal/core/domain"
	"github.com/custodia-labs/protovend-cli/internal/core/ports/driven"
	"github.com/custodia-labs/protovend-cli/internal/sanitisers/proto"
)

// DefaultPath is the configuration file looked up when the CLI is not
// given an explicit --config.
const DefaultPath = ".protovend.toml"

// Built-in defaults: the etcd v3 API schema set vendored from raw
// GitHub hosting.
const (
	defaultURLTemplate = "https://raw.githubusercontent.com/etcd-io/etcd/{branch}/{path}"
	defaultBranch      = "master"
	defaultFetcherType = "httpraw"
	defaultVendorRoot  = "proto"
	defaultTokenEnv    = "PROTOVEND_TOKEN"
)

var defaultPaths = []string{
	"etcdserver/etcdserverpb/rpc.proto",
	"mvcc/mvccpb/kv.proto",
	"auth/authpb/auth.proto",
}

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// fileConfig is the on-disk TOML shape. Every field is optional and
// overrides one default.
type fileConfig struct {
	URLTemplate   string   `toml:"url_template"`
	Branch        string   `toml:"branch"`
	Fetcher       string   `toml:"fetcher"`
	VendorRoot    string   `toml:"vendor_root"`
	Paths         []string `toml:"paths"`
	VendorImports []string `toml:"vendor_imports"`
	LocalDir      string   `toml:"local_dir"`
	TokenEnv      string   `toml:"token_env"`
	TimeoutSecs   int      `toml:"timeout_seconds"`
}

// ConfigStore loads vendor configuration from a TOML file, falling
// back to the built-in defaults for anything the file omits.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a config store reading from filePath.
// An empty path means DefaultPath in the working directory.
func NewConfigStore(filePath string) *ConfigStore {
	if filePath == "" {
		filePath = DefaultPath
	}
	return &ConfigStore{filePath: filePath}
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the configuration. A missing file yields the defaults; a
// file that exists but fails to parse is an error.
func (s *ConfigStore) Load() (*driven.VendorConfig, error) {
	var fc fileConfig

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", s.filePath, err)
	default:
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", s.filePath, err)
		}
	}

	cfg := &driven.VendorConfig{
		Spec: domain.SourceSpec{
			URLTemplate: orDefault(fc.URLTemplate, defaultURLTemplate),
			Branch:      orDefault(fc.Branch, defaultBranch),
			Paths:       defaultPaths,
		},
		FetcherType:   orDefault(fc.Fetcher, defaultFetcherType),
		VendorRoot:    orDefault(fc.VendorRoot, defaultVendorRoot),
		VendorImports: proto.DefaultVendorImports,
		Fetcher: driven.FetcherOptions{
			TimeoutSeconds: fc.TimeoutSecs,
			Token:          os.Getenv(orDefault(fc.TokenEnv, defaultTokenEnv)),
			LocalDir:       fc.LocalDir,
		},
	}
	if len(fc.Paths) > 0 {
		cfg.Spec.Paths = fc.Paths
	}
	if len(fc.VendorImports) > 0 {
		cfg.VendorImports = fc.VendorImports
	}

	if err := cfg.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.filePath, err)
	}
	return cfg, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
