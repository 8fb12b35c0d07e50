package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/novahq/nova/internal/marketplace"
)

func init() {
	marketplaceCmd.AddCommand(marketplaceListCmd)
}

var marketplaceListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured marketplaces",
	Long: `List all configured marketplaces across every scope.

Bundle counts and descriptions come from each installed manifest; a
marketplace whose installed files are missing or damaged still lists,
with those fields empty.`,
	Args: cobra.NoArgs,
	RunE: runMarketplaceList,
}

func runMarketplaceList(cmd *cobra.Command, _ []string) error {
	m, _, err := newMarketplace(cmd)
	if err != nil {
		return err
	}

	infos, err := m.List(cmd.Context())
	if err != nil {
		return err
	}

	renderMarketplaceList(cmd.OutOrStdout(), infos)
	return nil
}

func renderMarketplaceList(w io.Writer, infos []marketplace.Info) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No marketplaces configured. Add one with 'nova marketplace add'.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSCOPE\tBUNDLES\tSOURCE\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			info.Name,
			info.Scope,
			info.BundleCount,
			truncate(info.Source.String(), 40),
			truncate(info.Description, 50))
	}
	tw.Flush()
}
