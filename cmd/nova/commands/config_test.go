package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/novahq/nova/internal/config"
	"github.com/novahq/nova/internal/marketplace/source"
)

func testConfig() *config.Config {
	return &config.Config{
		Logging: config.LoggingConfig{Level: "debug", Format: "json"},
		Marketplaces: []config.MarketplaceEntry{
			{Name: "bundles", Source: source.Hosted("acme", "bundles")},
		},
		Extra: map[string]any{
			"telemetry": map[string]any{"enabled": false},
		},
	}
}

func TestRenderConfig_YAML(t *testing.T) {
	out, err := renderConfig(testConfig(), "yaml")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Contains(t, doc, "logging")
	require.Contains(t, doc, "marketplaces")
	// Inline sections flatten to top-level keys.
	require.Contains(t, doc, "telemetry")
}

func TestRenderConfig_JSON(t *testing.T) {
	out, err := renderConfig(testConfig(), "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Contains(t, doc, "logging")
	require.Contains(t, doc, "telemetry")
}

func TestRenderConfig_TOML(t *testing.T) {
	out, err := renderConfig(testConfig(), "toml")
	require.NoError(t, err)
	require.Contains(t, string(out), "[logging]")
}

func TestRenderConfig_UnknownFormat(t *testing.T) {
	_, err := renderConfig(testConfig(), "xml")
	require.Error(t, err)
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error should name the bad format: %v", err)
	}
}

func TestConfigCommand_Metadata(t *testing.T) {
	if configShowCmd.Flags().Lookup("scope") == nil {
		t.Error("--scope flag should be defined")
	}
	if configShowCmd.Flags().Lookup("format") == nil {
		t.Error("--format flag should be defined")
	}
}
