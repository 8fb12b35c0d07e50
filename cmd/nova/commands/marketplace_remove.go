package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novahq/nova/internal/config"
	"github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/marketplace"
)

var marketplaceRemoveScope string

func init() {
	marketplaceRemoveCmd.Flags().StringVar(&marketplaceRemoveScope, "scope", "",
		"config scope to remove the entry from (default: the scope that declared it)")
	marketplaceCmd.AddCommand(marketplaceRemoveCmd)
}

var marketplaceRemoveCmd = &cobra.Command{
	Use:     "remove [name]",
	Aliases: []string{"rm"},
	Short:   "Remove a configured marketplace",
	Long: `Remove a configured marketplace.

Installed files, tracked state, and the config entry are all removed.
Missing pieces are tolerated, so a partially installed or externally
damaged marketplace can still be cleaned up.

When run without a name in a terminal, an interactive picker is shown.`,
	Example: `  # Remove by name
  nova marketplace remove bundles

  # Pick interactively
  nova marketplace remove`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarketplaceRemove,
}

func runMarketplaceRemove(cmd *cobra.Command, args []string) error {
	var scope config.Scope
	if marketplaceRemoveScope != "" {
		parsed, err := config.ParseScope(marketplaceRemoveScope)
		if err != nil {
			return errors.NewUserError(err, "valid scopes: global, project, user")
		}
		scope = parsed
	}

	m, _, err := newMarketplace(cmd)
	if err != nil {
		return err
	}

	name, err := resolveMarketplaceName(cmd, m, args)
	if err != nil {
		return err
	}
	if name == "" {
		// Picker aborted.
		return nil
	}

	if err := m.Remove(cmd.Context(), name, scope); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed marketplace %q\n", name)
	return nil
}

// resolveMarketplaceName returns the explicit name argument, or prompts with
// an interactive picker when none was given. Returns an empty name when the
// picker is aborted.
func resolveMarketplaceName(cmd *cobra.Command, m *marketplace.Marketplace, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return pickMarketplace(cmd, m)
}
