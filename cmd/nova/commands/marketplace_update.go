package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	marketplaceCmd.AddCommand(marketplaceUpdateCmd)
}

var marketplaceUpdateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Refresh a marketplace from its source",
	Long: `Refresh the installed files of a marketplace from its source.

Git-backed marketplaces pull the latest changes; local marketplaces are
re-copied. A marketplace whose installed files went missing is fetched
again from scratch.

When run without a name in a terminal, an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarketplaceUpdate,
}

func runMarketplaceUpdate(cmd *cobra.Command, args []string) error {
	m, _, err := newMarketplace(cmd)
	if err != nil {
		return err
	}

	name, err := resolveMarketplaceName(cmd, m, args)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	info, err := m.Update(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated marketplace %q (%d bundle(s))\n",
		info.Name, info.BundleCount)
	return nil
}
