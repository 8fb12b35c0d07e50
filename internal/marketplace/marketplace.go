// Package marketplace installs, tracks, and removes bundle marketplaces.
//
// An installed marketplace has three footprints that must stay consistent:
// the copied files under the install root, a state record in the datastore,
// and a config entry in one of the scoped config files. Add applies them in
// that order and rolls back on failure; Remove tolerates partial footprints
// so a damaged install can always be cleaned up.
package marketplace

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/novahq/nova/internal/config"
	"github.com/novahq/nova/internal/datastore"
	"github.com/novahq/nova/internal/git"
	"github.com/novahq/nova/internal/logging"
	"github.com/novahq/nova/internal/marketplace/source"
	"github.com/novahq/nova/internal/paths"
	"github.com/novahq/nova/internal/settings"
	"github.com/novahq/nova/pkg/fileutil"
)

// StateNamespace is the datastore namespace holding install state records.
const StateNamespace = "marketplaces"

// ConfigProvider is the configuration surface the orchestrator needs.
// *config.Store satisfies it; tests substitute in-memory providers.
type ConfigProvider interface {
	Resolve() (*config.Effective, error)
	Write(scope config.Scope, mutate func(*config.Config) error) error
}

// State is the persisted install record for one marketplace.
type State struct {
	Name        string        `json:"name"`
	Source      source.Source `json:"source"`
	InstallPath string        `json:"install_path"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

// Info is the resolved view of a configured marketplace. Description and
// BundleCount come from the installed manifest and degrade to zero values
// when the install is missing or damaged.
type Info struct {
	Name        string
	Source      source.Source
	Scope       config.Scope
	Description string
	BundleCount int
	InstallPath string
}

// Marketplace orchestrates marketplace installs against a config provider,
// a datastore namespace, and an install root on disk.
type Marketplace struct {
	cfg         ConfigProvider
	store       *datastore.Store
	fetcher     *Fetcher
	installRoot string
	logger      *slog.Logger
}

// Option configures a Marketplace.
type Option func(*Marketplace)

// WithInstallRoot overrides the directory marketplaces are installed under.
func WithInstallRoot(dir string) Option {
	return func(m *Marketplace) { m.installRoot = dir }
}

// WithDataStore overrides the state datastore.
func WithDataStore(s *datastore.Store) Option {
	return func(m *Marketplace) { m.store = s }
}

// WithFetcher overrides the source fetcher.
func WithFetcher(f *Fetcher) Option {
	return func(m *Marketplace) { m.fetcher = f }
}

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Marketplace) { m.logger = l }
}

// New creates a Marketplace over the given config provider.
func New(cfg ConfigProvider, opts ...Option) *Marketplace {
	m := &Marketplace{
		cfg:         cfg,
		store:       datastore.New(StateNamespace),
		fetcher:     NewFetcher(),
		installRoot: paths.MarketplacesDir(),
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Marketplace) installPath(name string) string {
	return filepath.Join(m.installRoot, name)
}

// Add installs the marketplace identified by raw into the given config
// scope. workingDir anchors relative local-path sources.
//
// The pipeline is: parse, fetch to staging, validate the manifest, check
// for duplicates against the resolved config, promote the staging directory
// to the install root, persist state, and finally append the config entry.
// Any failure after promotion rolls the earlier footprints back.
func (m *Marketplace) Add(ctx context.Context, raw string, scope config.Scope, workingDir string) (*Info, error) {
	src, err := source.Parse(raw, workingDir)
	if err != nil {
		return nil, err
	}

	name := src.DeriveName()
	log := m.logger.With("marketplace", name, "source", src.String())
	log.DebugContext(ctx, "adding marketplace", "scope", scope)

	// Duplicate check runs against the resolved view so collisions across
	// scope files are caught before any fetch happens.
	eff, err := m.cfg.Resolve()
	if err != nil {
		return nil, err
	}
	for _, entry := range eff.Marketplaces {
		if entry.Name == name {
			return nil, errors.WithDetailf(ErrAlreadyExists,
				"marketplace %q is already configured from %s", name, entry.Source)
		}
		if entry.Source == src {
			return nil, errors.WithDetailf(ErrAlreadyExists,
				"source %s is already configured as marketplace %q", src, entry.Name)
		}
	}

	staging, cleanup, err := m.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	manifest, err := ReadManifest(staging)
	if err != nil {
		// Staging is discarded by the deferred cleanup; nothing else was
		// touched yet.
		return nil, err
	}

	installPath := m.installPath(name)
	if err := m.promote(staging, installPath); err != nil {
		return nil, err
	}

	state := State{
		Name:        name,
		Source:      src,
		InstallPath: installPath,
		FetchedAt:   time.Now().UTC(),
	}
	if err := m.store.Save(name, state); err != nil {
		if rbErr := os.RemoveAll(installPath); rbErr != nil {
			return nil, errors.Wrapf(err, "saving marketplace state (cleanup of %s also failed: %v)", installPath, rbErr)
		}
		return nil, errors.Wrap(err, "saving marketplace state")
	}

	err = m.cfg.Write(scope, func(cfg *config.Config) error {
		cfg.Marketplaces = append(cfg.Marketplaces, config.MarketplaceEntry{Name: name, Source: src})
		return nil
	})
	if err != nil {
		m.rollbackInstall(ctx, name, installPath)
		return nil, errors.Wrapf(err, "registering marketplace in %s config", scope)
	}

	log.InfoContext(ctx, "marketplace added",
		"scope", scope, "bundles", len(manifest.Bundles), "path", installPath)

	return &Info{
		Name:        name,
		Source:      src,
		Scope:       scope,
		Description: manifest.Description,
		BundleCount: len(manifest.Bundles),
		InstallPath: installPath,
	}, nil
}

// promote moves the staging directory into its final install location,
// replacing any orphaned files from a previous failed install.
func (m *Marketplace) promote(staging, installPath string) error {
	if err := paths.EnsureDir(m.installRoot, 0o755); err != nil {
		return errors.Wrap(err, "creating install root")
	}
	if err := os.RemoveAll(installPath); err != nil {
		return errors.Wrapf(err, "clearing previous install at %s", installPath)
	}

	if err := os.Rename(staging, installPath); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to a copy.
	if err := fileutil.CopyDir(staging, installPath); err != nil {
		os.RemoveAll(installPath)
		return errors.Wrapf(err, "installing to %s", installPath)
	}
	return nil
}

// rollbackInstall undoes the install footprints after a late failure.
// Rollback is best effort; leftovers are logged, not returned.
func (m *Marketplace) rollbackInstall(ctx context.Context, name, installPath string) {
	if err := m.store.Delete(name); err != nil && !errors.Is(err, datastore.ErrKeyNotFound) {
		m.logger.WarnContext(ctx, "rollback: removing state record failed",
			"marketplace", name, "error", err)
	}
	if err := os.RemoveAll(installPath); err != nil {
		m.logger.WarnContext(ctx, "rollback: removing installed files failed",
			"marketplace", name, "path", installPath, "error", err)
	}
}

// Remove uninstalls the named marketplace: installed files first, then the
// state record, then the config entry. scope overrides the config file to
// edit; when empty, the entry's discovered scope is used.
//
// Missing footprints are tolerated so removal also works on installs that
// were only partially created or externally damaged.
func (m *Marketplace) Remove(ctx context.Context, name string, scope config.Scope) error {
	eff, err := m.cfg.Resolve()
	if err != nil {
		return err
	}
	entry, ok := eff.FindScoped(name)
	if !ok {
		return errors.WithDetailf(ErrNotFound, "no marketplace named %q is configured", name)
	}

	log := m.logger.With("marketplace", name)

	installPath := m.installPath(name)
	var state State
	switch err := m.store.Load(name, &state); {
	case err == nil:
		installPath = state.InstallPath
	case errors.Is(err, datastore.ErrKeyNotFound):
		log.WarnContext(ctx, "no install state recorded, removing default install path",
			"path", installPath)
	default:
		return err
	}

	// Files go first: an I/O failure here leaves config and state intact so
	// the operation can simply be retried.
	if err := os.RemoveAll(installPath); err != nil {
		return errors.Mark(errors.Wrapf(err, "removing installed files at %s", installPath), ErrRemove)
	}

	if err := m.store.Delete(name); err != nil && !errors.Is(err, datastore.ErrKeyNotFound) {
		return err
	}

	target := entry.Scope
	if scope != "" {
		target = scope
	}
	err = m.cfg.Write(target, func(cfg *config.Config) error {
		kept := cfg.Marketplaces[:0]
		for _, e := range cfg.Marketplaces {
			if e.Name != name {
				kept = append(kept, e)
			}
		}
		cfg.Marketplaces = kept
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "removing marketplace from %s config", target)
	}

	log.InfoContext(ctx, "marketplace removed", "scope", target)
	return nil
}

// List returns the resolved view of all configured marketplaces in merged
// order. Manifest-derived fields degrade to zero values when an install is
// missing or damaged.
func (m *Marketplace) List(ctx context.Context) ([]Info, error) {
	eff, err := m.cfg.Resolve()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(eff.Marketplaces))
	for _, entry := range eff.ScopedMarketplaces() {
		infos = append(infos, m.describe(entry))
	}
	return infos, nil
}

// Get returns the resolved view of one configured marketplace.
func (m *Marketplace) Get(ctx context.Context, name string) (*Info, error) {
	eff, err := m.cfg.Resolve()
	if err != nil {
		return nil, err
	}
	entry, ok := eff.FindScoped(name)
	if !ok {
		return nil, errors.WithDetailf(ErrNotFound, "no marketplace named %q is configured", name)
	}
	info := m.describe(entry)
	return &info, nil
}

func (m *Marketplace) describe(entry config.ScopedEntry) Info {
	installPath := m.installPath(entry.Name)
	var state State
	if err := m.store.Load(entry.Name, &state); err == nil {
		installPath = state.InstallPath
	}

	meta := ReadMetadata(installPath)
	return Info{
		Name:        entry.Name,
		Source:      entry.Source,
		Scope:       entry.Scope,
		Description: meta.Description,
		BundleCount: meta.BundleCount,
		InstallPath: installPath,
	}
}

// Update refreshes the installed files of the named marketplace from its
// source: git-backed installs pull, local installs re-copy. A missing
// install directory is re-fetched from scratch.
func (m *Marketplace) Update(ctx context.Context, name string) (*Info, error) {
	eff, err := m.cfg.Resolve()
	if err != nil {
		return nil, err
	}
	entry, ok := eff.FindScoped(name)
	if !ok {
		return nil, errors.WithDetailf(ErrNotFound, "no marketplace named %q is configured", name)
	}

	installPath := m.installPath(name)
	var state State
	if err := m.store.Load(name, &state); err == nil {
		installPath = state.InstallPath
	}

	log := m.logger.With("marketplace", name)

	switch {
	case entry.Source.IsGitBacked() && git.IsRepository(installPath):
		pullCtx, cancel := context.WithTimeout(ctx, settings.CloneTimeout())
		defer cancel()
		if err := git.Pull(pullCtx, installPath); err != nil {
			return nil, errors.Mark(err, ErrFetch)
		}

	default:
		// Install is missing, damaged, or a plain copy: fetch fresh and
		// promote over it.
		staging, cleanup, err := m.fetcher.Fetch(ctx, entry.Source)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		if err := m.promote(staging, installPath); err != nil {
			return nil, err
		}
	}

	// Validate the refreshed tree before recording the update.
	manifest, err := ReadManifest(installPath)
	if err != nil {
		return nil, err
	}

	state = State{
		Name:        name,
		Source:      entry.Source,
		InstallPath: installPath,
		FetchedAt:   time.Now().UTC(),
	}
	if err := m.store.Save(name, state); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "marketplace updated", "bundles", len(manifest.Bundles))

	return &Info{
		Name:        name,
		Source:      entry.Source,
		Scope:       entry.Scope,
		Description: manifest.Description,
		BundleCount: len(manifest.Bundles),
		InstallPath: installPath,
	}, nil
}
