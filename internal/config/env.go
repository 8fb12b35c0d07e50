package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override configuration values.
// Segments are separated by double underscores and lowercased, e.g.
// NOVA_CONFIG__LOGGING__LEVEL=debug sets logging.level.
const EnvPrefix = "NOVA_CONFIG__"

// ApplyEnvOverrides applies matching variables from environ (in
// os.Environ() "KEY=value" form) onto cfg as the highest-precedence layer.
//
// Malformed keys — empty segment paths, list-valued sections like
// marketplaces, or unknown fields of known sections — are silently skipped
// so a stray variable never aborts resolution.
func ApplyEnvOverrides(cfg *Config, environ []string) *Config {
	out := cloneConfig(cfg)

	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}

		path := strings.Trim(key[len(EnvPrefix):], "_")
		if path == "" {
			continue
		}

		var segments []string
		for _, seg := range strings.Split(path, "__") {
			if seg != "" {
				segments = append(segments, strings.ToLower(seg))
			}
		}
		if len(segments) == 0 {
			continue
		}

		applyOverride(out, segments, parseEnvValue(value))
	}

	return out
}

func applyOverride(cfg *Config, segments []string, value any) {
	switch segments[0] {
	case "logging":
		if len(segments) != 2 {
			return
		}
		switch segments[1] {
		case "level":
			cfg.Logging.Level = fmt.Sprint(value)
		case "format":
			cfg.Logging.Format = fmt.Sprint(value)
		}
	case "marketplaces":
		// List sections are not addressable through env keys.
		return
	default:
		setNested(cfg, segments, value)
	}
}

func setNested(cfg *Config, segments []string, value any) {
	if cfg.Extra == nil {
		cfg.Extra = make(map[string]any)
	}

	cursor := cfg.Extra
	for _, seg := range segments[:len(segments)-1] {
		child, ok := cursor[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			cursor[seg] = child
		}
		cursor = child
	}
	cursor[segments[len(segments)-1]] = value
}

// parseEnvValue decodes the raw value as a YAML scalar, so "5" becomes an
// int and "true" a bool. Undecodable values stay strings.
func parseEnvValue(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	if v == nil {
		return raw
	}
	return v
}
