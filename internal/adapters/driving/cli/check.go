package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [branch]",
	Short: "Validate the configured fetcher",
	Long: `Checks that the configured fetcher can reach its source: remote
fetchers make one lightweight request, the filesystem fetcher checks
the checkout root. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	if err := svcs.Fetcher.Validate(cmd.Context()); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	cmd.Printf("Fetcher %s is ready.\n", svcs.Fetcher.Type())
	return nil
}
