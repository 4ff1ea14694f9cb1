// Command protovend vendors upstream schema files into the local
// project tree, sanitised for the local toolchain.
package main

import (
	"fmt"
	"os"

	configfile "github.com/custodia-labs/protovend-cli/internal/adapters/driven/config/file"
	outputfile "github.com/custodia-labs/protovend-cli/internal/adapters/driven/output/file"
	"github.com/custodia-labs/protovend-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/protovend-cli/internal/core/services"
	"github.com/custodia-labs/protovend-cli/internal/fetchers"
	"github.com/custodia-labs/protovend-cli/internal/fetchers/filesystem"
	"github.com/custodia-labs/protovend-cli/internal/fetchers/github"
	"github.com/custodia-labs/protovend-cli/internal/fetchers/httpraw"
	"github.com/custodia-labs/protovend-cli/internal/sanitisers/proto"
)

func buildServices(configPath, branch string) (*cli.Services, error) {
	cfg, err := configfile.NewConfigStore(configPath).Load()
	if err != nil {
		return nil, err
	}
	if branch != "" {
		cfg.Spec.Branch = branch
	}

	factory := fetchers.NewFactory()
	factory.Register(httpraw.Type, httpraw.Builder)
	factory.Register(github.Type, github.Builder)
	factory.Register(filesystem.Type, filesystem.Builder)

	fetcher, err := factory.Create(cfg.FetcherType, cfg.Spec, cfg.Fetcher)
	if err != nil {
		return nil, err
	}

	vendorer := services.NewVendorOrchestrator(
		cfg.Spec,
		fetcher,
		proto.New(cfg.VendorImports...),
		outputfile.NewWriter(cfg.VendorRoot),
	)

	return &cli.Services{
		Vendorer:   vendorer,
		Fetcher:    fetcher,
		VendorRoot: cfg.VendorRoot,
	}, nil
}

func main() {
	cli.SetServicesBuilder(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
