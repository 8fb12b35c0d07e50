package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	novaerrors "github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/logging"
	"github.com/novahq/nova/internal/marketplace"
)

// pickMarketplace shows an interactive fuzzy picker over the configured
// marketplaces. Returns an empty name when the user aborts.
func pickMarketplace(cmd *cobra.Command, m *marketplace.Marketplace) (string, error) {
	if !logging.IsTTY(os.Stdout) {
		return "", novaerrors.NewUserError(nil, "specify a marketplace name when not running in a terminal")
	}

	infos, err := m.List(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", novaerrors.NewUserError(nil, "no marketplaces are configured; add one with 'nova marketplace add'")
	}

	idx, err := fuzzyfinder.Find(
		infos,
		func(i int) string {
			return fmt.Sprintf("%s (%s)", infos[i].Name, infos[i].Source)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			info := infos[i]
			return fmt.Sprintf("Name: %s\nSource: %s\nScope: %s\nBundles: %d\n\n%s",
				info.Name,
				info.Source,
				info.Scope,
				info.BundleCount,
				info.Description,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", nil
		}
		return "", err
	}

	return infos[idx].Name, nil
}
