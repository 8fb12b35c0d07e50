package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/novahq/nova/internal/config"
	"github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/logging"
	"github.com/novahq/nova/internal/marketplace"
)

func init() {
	rootCmd.AddCommand(marketplaceCmd)
}

var marketplaceCmd = &cobra.Command{
	Use:     "marketplace",
	Aliases: []string{"mp"},
	Short:   "Manage bundle marketplaces",
	Long: `Manage bundle marketplaces.

A marketplace is a catalog of installable bundles described by a
marketplace.json manifest. Sources can be hosted repositories
(owner/repo), git URLs, or local directories.`,
	Example: `  # Add a marketplace
  nova marketplace add acme/bundles

  # List configured marketplaces
  nova marketplace list

  # Remove a marketplace
  nova marketplace remove bundles`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// newMarketplace builds the orchestrator over the config scopes discovered
// from the current working directory.
func newMarketplace(cmd *cobra.Command) (*marketplace.Marketplace, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.NewSystemError(err, "cannot determine working directory")
	}

	store := config.NewStore(wd)
	m := marketplace.New(store,
		marketplace.WithLogger(logging.FromContext(cmd.Context())))
	return m, wd, nil
}
