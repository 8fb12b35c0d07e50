package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/novahq/nova/internal/paths"
	"github.com/novahq/nova/pkg/fileutil"
)

// ErrScopeUnavailable indicates a project-level scope was requested outside
// of any project (no .nova directory above the working directory).
var ErrScopeUnavailable = errors.New("scope unavailable outside a project")

// ScopePaths holds the file locations of the three configuration scopes.
// Project and User are empty when no project root was found.
type ScopePaths struct {
	Global  string
	Project string
	User    string
}

// Path returns the file location for the given scope. Returns
// ErrScopeUnavailable if the scope has no backing file location.
func (p ScopePaths) Path(scope Scope) (string, error) {
	var path string
	switch scope {
	case ScopeGlobal:
		path = p.Global
	case ScopeProject:
		path = p.Project
	case ScopeUser:
		path = p.User
	}
	if path == "" {
		return "", errors.WithDetailf(ErrScopeUnavailable,
			"scope %q requires a project (.nova directory)", string(scope))
	}
	return path, nil
}

// DiscoverScopePaths resolves the scope file locations for a working
// directory. The global path always resolves; project and user paths
// resolve only when a .nova marker directory exists at or above workingDir.
func DiscoverScopePaths(workingDir string) ScopePaths {
	sp := ScopePaths{Global: paths.GlobalConfigPath()}

	root, err := paths.FindProjectRoot(workingDir)
	if err != nil {
		return sp
	}

	sp.Project = paths.ProjectConfigPath(root)
	sp.User = paths.UserConfigPath(root)
	return sp
}

// Store reads, merges, and writes the scoped YAML configuration files.
// It is the file-backed configuration provider handed to the marketplace
// orchestrator; tests substitute in-memory providers instead.
type Store struct {
	paths   ScopePaths
	environ func() []string
}

// NewStore creates a store for the scope files discovered from workingDir.
func NewStore(workingDir string) *Store {
	return NewStoreWithPaths(DiscoverScopePaths(workingDir))
}

// NewStoreWithPaths creates a store over explicit scope file locations.
// This variant allows overriding discovery for testing.
func NewStoreWithPaths(sp ScopePaths) *Store {
	return &Store{paths: sp, environ: os.Environ}
}

// Paths returns the scope file locations this store operates on.
func (s *Store) Paths() ScopePaths {
	return s.paths
}

// Load reads a single scope file. A missing file is not an error and
// yields an empty document; malformed YAML or schema violations return a
// *ValidationError.
func (s *Store) Load(scope Scope) (*Config, error) {
	path, err := s.paths.Path(scope)
	if err != nil {
		// An unavailable scope reads as empty: nothing is configured there.
		return &Config{}, nil
	}
	return loadScopeFile(scope, path)
}

func loadScopeFile(scope Scope, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s config at %s", scope, path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ValidationError{Scope: scope, Path: path, Message: err.Error()}
	}

	if err := Validate(&cfg, scope, path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Resolve merges all scopes into the effective configuration: global, then
// project, then user, with environment overrides applied on top.
func (s *Store) Resolve() (*Effective, error) {
	merged := &Config{}
	entryScopes := make(map[string]Scope)

	for _, scope := range Scopes() {
		cfg, err := s.Load(scope)
		if err != nil {
			return nil, err
		}
		for _, entry := range cfg.Marketplaces {
			entryScopes[entry.Name] = scope
		}
		merged = Merge(merged, cfg)
	}

	merged = ApplyEnvOverrides(merged, s.environ())

	return &Effective{Config: *merged, entryScopes: entryScopes}, nil
}

// Write loads only the target scope file, applies mutate, validates, and
// writes the result back atomically. Other scope files are untouched.
func (s *Store) Write(scope Scope, mutate func(*Config) error) error {
	path, err := s.paths.Path(scope)
	if err != nil {
		return err
	}

	cfg, err := loadScopeFile(scope, path)
	if err != nil {
		return err
	}

	if err := mutate(cfg); err != nil {
		return err
	}

	if err := Validate(cfg, scope, path); err != nil {
		return err
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating config directory for %s scope", scope)
	}

	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrapf(err, "writing %s config", scope)
	}
	return nil
}

// Effective is the merged configuration view produced by Resolve. It
// remembers which scope contributed each marketplace entry so removal can
// target the right file.
type Effective struct {
	Config

	entryScopes map[string]Scope
}

// ScopedEntry is a marketplace entry annotated with the scope that
// declared it in the merged view.
type ScopedEntry struct {
	MarketplaceEntry
	Scope Scope
}

// ScopedMarketplaces returns all merged marketplace entries with their
// originating scopes, in merged order.
func (e *Effective) ScopedMarketplaces() []ScopedEntry {
	out := make([]ScopedEntry, 0, len(e.Marketplaces))
	for _, entry := range e.Marketplaces {
		out = append(out, ScopedEntry{MarketplaceEntry: entry, Scope: e.entryScopes[entry.Name]})
	}
	return out
}

// FindScoped returns the merged entry with the given name, if present.
func (e *Effective) FindScoped(name string) (ScopedEntry, bool) {
	entry, ok := e.FindMarketplace(name)
	if !ok {
		return ScopedEntry{}, false
	}
	return ScopedEntry{MarketplaceEntry: entry, Scope: e.entryScopes[name]}, true
}

// HasMarketplace reports whether a marketplace with the given name exists
// anywhere in the merged view. Duplicate detection always runs against
// this resolved view so collisions across scope files are caught.
func (e *Effective) HasMarketplace(name string) bool {
	_, ok := e.FindMarketplace(name)
	return ok
}
