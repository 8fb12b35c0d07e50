package config

import (
	"fmt"

	"github.com/cockroachdb/errors"

	novaerrors "github.com/novahq/nova/internal/errors"
	"github.com/novahq/nova/internal/marketplace/source"
)

// Scope identifies a configuration precedence level.
type Scope string

const (
	// ScopeGlobal is the machine-wide configuration
	// (~/.config/nova/config.yaml).
	ScopeGlobal Scope = "global"
	// ScopeProject is the project configuration (.nova/config.yaml),
	// typically checked into version control.
	ScopeProject Scope = "project"
	// ScopeUser is the per-user project override (.nova/config.local.yaml),
	// typically ignored by version control.
	ScopeUser Scope = "user"
)

// Scopes returns all scopes in ascending precedence order
// (global < project < user).
func Scopes() []Scope {
	return []Scope{ScopeGlobal, ScopeProject, ScopeUser}
}

// ParseScope converts a string to a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeGlobal, ScopeProject, ScopeUser:
		return Scope(s), nil
	default:
		return "", errors.WithDetailf(novaerrors.ErrInvalidScope,
			"%q is not a scope (valid: global, project, user)", s)
	}
}

// MarketplaceEntry is a configured marketplace as stored in a scope file.
// Names are unique across the merged view, not per scope file.
type MarketplaceEntry struct {
	Name   string        `yaml:"name" json:"name"`
	Source source.Source `yaml:"source" json:"source"`
}

// LoggingConfig holds the logging section of a config document.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

// Config is one configuration document: either a single scope file or the
// merged effective view. Unknown sections are preserved in Extra so nova
// can round-trip config files it does not fully understand.
type Config struct {
	Logging      LoggingConfig      `yaml:"logging,omitempty" json:"logging,omitempty"`
	Marketplaces []MarketplaceEntry `yaml:"marketplaces,omitempty" json:"marketplaces,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// FindMarketplace returns the entry with the given name, if present.
func (c *Config) FindMarketplace(name string) (MarketplaceEntry, bool) {
	for _, e := range c.Marketplaces {
		if e.Name == name {
			return e, true
		}
	}
	return MarketplaceEntry{}, false
}

// ValidationError reports a schema violation in a configuration document.
type ValidationError struct {
	Scope   Scope
	Path    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s config", e.Scope)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	return msg + ": " + e.Message
}

// Validate checks a config document for schema violations.
// Returns nil if valid.
func Validate(cfg *Config, scope Scope, path string) error {
	if cfg == nil {
		return &ValidationError{Scope: scope, Path: path, Message: "config is nil"}
	}

	seen := make(map[string]struct{}, len(cfg.Marketplaces))
	for i, entry := range cfg.Marketplaces {
		field := fmt.Sprintf("marketplaces[%d]", i)
		if entry.Name == "" {
			return &ValidationError{Scope: scope, Path: path, Field: field + ".name", Message: "name is required"}
		}
		if _, dup := seen[entry.Name]; dup {
			return &ValidationError{Scope: scope, Path: path, Field: field + ".name",
				Message: fmt.Sprintf("duplicate marketplace %q", entry.Name)}
		}
		seen[entry.Name] = struct{}{}

		if err := entry.Source.Validate(); err != nil {
			return &ValidationError{Scope: scope, Path: path, Field: field + ".source", Message: err.Error()}
		}
	}

	return nil
}
