package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/novahq/nova/internal/config"
	novaerrors "github.com/novahq/nova/internal/errors"
)

var (
	configShowScope  string
	configShowFormat string
)

func init() {
	configShowCmd.Flags().StringVar(&configShowScope, "scope", "",
		"show a single scope file instead of the merged view: global, project, user")
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "yaml",
		"output format: yaml, json, toml")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect nova configuration",
	Long: `Inspect nova's layered configuration.

Configuration merges three scopes in increasing precedence: the global
file, the project file, and the per-developer local file. Environment
variables prefixed with NOVA_CONFIG__ override all of them.`,
	Example: `  # Show the effective merged configuration
  nova config show

  # Show only the project scope file
  nova config show --scope project

  # Show where each scope file lives
  nova config path`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective or per-scope configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return novaerrors.NewSystemError(err, "cannot determine working directory")
	}
	store := config.NewStore(wd)

	var cfg *config.Config
	if configShowScope == "" {
		eff, err := store.Resolve()
		if err != nil {
			return err
		}
		cfg = &eff.Config
	} else {
		scope, err := config.ParseScope(configShowScope)
		if err != nil {
			return novaerrors.NewUserError(err, "valid scopes: global, project, user")
		}
		cfg, err = store.Load(scope)
		if err != nil {
			return err
		}
	}

	out, err := renderConfig(cfg, configShowFormat)
	if err != nil {
		return err
	}
	cmd.OutOrStdout().Write(out)
	return nil
}

// renderConfig serializes a config document in the requested format. The
// document passes through YAML first so inline sections flatten the same
// way in every format.
func renderConfig(cfg *config.Config, format string) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "encoding config")
	}

	switch format {
	case "yaml":
		return data, nil
	case "json", "toml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "encoding config")
		}
		if format == "json" {
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return nil, errors.Wrap(err, "encoding config as JSON")
			}
			return append(out, '\n'), nil
		}
		out, err := toml.Marshal(doc)
		if err != nil {
			return nil, errors.Wrap(err, "encoding config as TOML")
		}
		return out, nil
	default:
		return nil, novaerrors.NewUserError(
			errors.Newf("unknown format %q", format), "valid formats: yaml, json, toml")
	}
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file location for each scope",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return novaerrors.NewSystemError(err, "cannot determine working directory")
	}

	sp := config.DiscoverScopePaths(wd)
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "global:  %s\n", sp.Global)
	if sp.Project != "" {
		fmt.Fprintf(w, "project: %s\n", sp.Project)
		fmt.Fprintf(w, "user:    %s\n", sp.User)
	} else {
		fmt.Fprintln(w, "project: (not in a project)")
		fmt.Fprintln(w, "user:    (not in a project)")
	}
	return nil
}
