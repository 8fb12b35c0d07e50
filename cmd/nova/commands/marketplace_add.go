package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novahq/nova/internal/config"
	"github.com/novahq/nova/internal/errors"
)

var marketplaceAddScope string

func init() {
	marketplaceAddCmd.Flags().StringVar(&marketplaceAddScope, "scope", string(config.ScopeProject),
		"config scope to register the marketplace in: global, project, user")
	marketplaceCmd.AddCommand(marketplaceAddCmd)
}

var marketplaceAddCmd = &cobra.Command{
	Use:   "add <source>",
	Short: "Add a bundle marketplace",
	Long: `Add a bundle marketplace from a source.

The source is fetched, its marketplace.json manifest is validated, and
the marketplace is installed and registered in the chosen config scope.
The marketplace name is derived from the source: the repository name for
hosted and git sources, the directory name for local paths.`,
	Example: `  # Hosted repository shorthand
  nova marketplace add acme/bundles

  # Full git URL
  nova marketplace add https://git.corp.example/tools/bundles.git

  # Local directory, registered in your personal scope
  nova marketplace add ./bundles --scope user`,
	Args: cobra.ExactArgs(1),
	RunE: runMarketplaceAdd,
}

func runMarketplaceAdd(cmd *cobra.Command, args []string) error {
	scope, err := config.ParseScope(marketplaceAddScope)
	if err != nil {
		return errors.NewUserError(err, "valid scopes: global, project, user")
	}

	m, wd, err := newMarketplace(cmd)
	if err != nil {
		return err
	}

	info, err := m.Add(cmd.Context(), args[0], scope, wd)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added marketplace %q (%d bundle(s)) to %s scope\n",
		info.Name, info.BundleCount, info.Scope)
	if info.Description != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", info.Description)
	}
	return nil
}
