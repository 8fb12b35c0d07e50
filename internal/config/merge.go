package config

// Merge combines two config documents, with overlay taking precedence.
//
// Scalar fields from overlay replace base values when set. List-valued
// sections append rather than replace: marketplace entries are keyed by
// name, and an overlay entry with the same name replaces the base entry
// in place. Unknown sections deep-merge map-wise.
func Merge(base, overlay *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if overlay == nil {
		return cloneConfig(base)
	}

	out := cloneConfig(base)

	if overlay.Logging.Level != "" {
		out.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.Format != "" {
		out.Logging.Format = overlay.Logging.Format
	}

	for _, entry := range overlay.Marketplaces {
		replaced := false
		for i, existing := range out.Marketplaces {
			if existing.Name == entry.Name {
				out.Marketplaces[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			out.Marketplaces = append(out.Marketplaces, entry)
		}
	}

	out.Extra = deepMerge(out.Extra, overlay.Extra)

	return out
}

func cloneConfig(c *Config) *Config {
	out := &Config{
		Logging: c.Logging,
	}
	if len(c.Marketplaces) > 0 {
		out.Marketplaces = make([]MarketplaceEntry, len(c.Marketplaces))
		copy(out.Marketplaces, c.Marketplaces)
	}
	if len(c.Extra) > 0 {
		out.Extra = deepMerge(nil, c.Extra)
	}
	return out
}

// deepMerge merges override into base recursively. Map values merge
// key-wise; anything else in override replaces the base value. Neither
// input is mutated.
func deepMerge(base, override map[string]any) map[string]any {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}

	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = copyValue(v)
	}
	for k, v := range override {
		if existing, ok := out[k].(map[string]any); ok {
			if overrideMap, ok := v.(map[string]any); ok {
				out[k] = deepMerge(existing, overrideMap)
				continue
			}
		}
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	if m, ok := v.(map[string]any); ok {
		return deepMerge(nil, m)
	}
	return v
}
