package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/novahq/nova/internal/marketplace"
)

func init() {
	marketplaceCmd.AddCommand(marketplaceShowCmd)
}

var marketplaceShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show details of a configured marketplace",
	Long: `Show the resolved details of one configured marketplace: its source,
the scope that declared it, the install location, and the bundle catalog
summary from the installed manifest.

When run without a name in a terminal, an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarketplaceShow,
}

func runMarketplaceShow(cmd *cobra.Command, args []string) error {
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

	info, err := m.Get(cmd.Context(), name)
	if err != nil {
		return err
	}

	renderMarketplaceInfo(cmd.OutOrStdout(), info)
	return nil
}

func renderMarketplaceInfo(w io.Writer, info *marketplace.Info) {
	bold := color.New(color.Bold)
	bold.Fprintln(w, info.Name)

	fmt.Fprintf(w, "  Source:  %s\n", info.Source)
	fmt.Fprintf(w, "  Scope:   %s\n", info.Scope)
	fmt.Fprintf(w, "  Path:    %s\n", info.InstallPath)
	fmt.Fprintf(w, "  Bundles: %d\n", info.BundleCount)
	if info.Description != "" {
		fmt.Fprintf(w, "\n  %s\n", info.Description)
	}
}
