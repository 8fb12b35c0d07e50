package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/novahq/nova/internal/marketplace/source"
)

// testStore builds a store over scope files in a temp directory, with env
// overrides disabled unless provided.
func testStore(t *testing.T, environ ...string) (*Store, ScopePaths) {
	t.Helper()
	dir := t.TempDir()
	sp := ScopePaths{
		Global:  filepath.Join(dir, "global", "config.yaml"),
		Project: filepath.Join(dir, "project", ".nova", "config.yaml"),
		User:    filepath.Join(dir, "project", ".nova", "config.local.yaml"),
	}
	s := NewStoreWithPaths(sp)
	s.environ = func() []string { return environ }
	return s, sp
}

func writeScope(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, _ := testStore(t)

	cfg, err := s.Load(ScopeGlobal)
	if err != nil {
		t.Fatalf("Load of missing file should not error: %v", err)
	}
	if len(cfg.Marketplaces) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	s, sp := testStore(t)
	writeScope(t, sp.Global, "marketplaces: [unclosed")

	_, err := s.Load(ScopeGlobal)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Scope != ScopeGlobal {
		t.Errorf("Scope = %v, want global", verr.Scope)
	}
}

func TestLoad_SchemaViolation(t *testing.T) {
	s, sp := testStore(t)
	writeScope(t, sp.Global, `
marketplaces:
  - name: ""
    source:
      type: github
      owner: acme
      repo: bundles
`)

	_, err := s.Load(ScopeGlobal)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Field == "" {
		t.Error("validation error should carry field detail")
	}
}

func TestResolve_ScopePrecedence(t *testing.T) {
	s, sp := testStore(t)
	writeScope(t, sp.Global, "logging:\n  level: info\n")
	writeScope(t, sp.Project, "logging:\n  level: debug\n")
	writeScope(t, sp.User, "logging:\n  level: warn\n")

	eff, err := s.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if eff.Logging.Level != "warn" {
		t.Errorf("Level = %q, want user scope value", eff.Logging.Level)
	}
}

func TestResolve_SameNameAcrossScopes(t *testing.T) {
	s, sp := testStore(t)
	writeScope(t, sp.Global, `
marketplaces:
  - name: x
    source:
      type: github
      owner: acme
      repo: x
`)
	writeScope(t, sp.User, `
marketplaces:
  - name: x
    source:
      type: git
      url: https://example.com/x.git
`)

	eff, err := s.Resolve()
	if err != nil {
		t.Fatal(err)
	}

	entries := eff.ScopedMarketplaces()
	if len(entries) != 1 {
		t.Fatalf("got %d entries for name x, want exactly 1", len(entries))
	}
	if entries[0].Source != source.Git("https://example.com/x.git") {
		t.Errorf("source = %+v, want user scope's source", entries[0].Source)
	}
	if entries[0].Scope != ScopeUser {
		t.Errorf("scope = %v, want user", entries[0].Scope)
	}
}

func TestResolve_EnvOnTop(t *testing.T) {
	s, sp := testStore(t, "NOVA_CONFIG__LOGGING__LEVEL=error")
	writeScope(t, sp.User, "logging:\n  level: warn\n")

	eff, err := s.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if eff.Logging.Level != "error" {
		t.Errorf("Level = %q, env override must win", eff.Logging.Level)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	s, sp := testStore(t)
	writeScope(t, sp.Global, `
marketplaces:
  - name: existing
    source:
      type: github
      owner: acme
      repo: existing
`)
	projectBefore := "logging:\n  level: debug\n"
	writeScope(t, sp.Project, projectBefore)

	entry := MarketplaceEntry{Name: "bundles", Source: source.Hosted("acme", "bundles")}
	err := s.Write(ScopeGlobal, func(c *Config) error {
		c.Marketplaces = append(c.Marketplaces, entry)
		return nil
	})
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	// Target scope now holds prior entries plus the new one.
	cfg, err := s.Load(ScopeGlobal)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Marketplaces) != 2 {
		t.Fatalf("got %d entries, want 2", len(cfg.Marketplaces))
	}
	if got, ok := cfg.FindMarketplace("bundles"); !ok || got.Source != entry.Source {
		t.Errorf("written entry = %+v, %v", got, ok)
	}

	// Other scopes are byte-for-byte unchanged.
	data, err := os.ReadFile(sp.Project)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != projectBefore {
		t.Errorf("project file changed: %q", data)
	}
}

func TestWrite_ValidationRejected(t *testing.T) {
	s, _ := testStore(t)

	err := s.Write(ScopeGlobal, func(c *Config) error {
		c.Marketplaces = append(c.Marketplaces, MarketplaceEntry{Name: ""})
		return nil
	})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestWrite_ScopeUnavailable(t *testing.T) {
	s := NewStoreWithPaths(ScopePaths{Global: filepath.Join(t.TempDir(), "config.yaml")})
	s.environ = func() []string { return nil }

	err := s.Write(ScopeProject, func(c *Config) error { return nil })
	if !errors.Is(err, ErrScopeUnavailable) {
		t.Errorf("expected ErrScopeUnavailable, got %v", err)
	}
}

func TestParseScope(t *testing.T) {
	for _, valid := range []string{"global", "project", "user"} {
		if _, err := ParseScope(valid); err != nil {
			t.Errorf("ParseScope(%q) error: %v", valid, err)
		}
	}
	if _, err := ParseScope("system"); err == nil {
		t.Error("ParseScope should reject unknown scope")
	}
}

func TestDiscoverScopePaths(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".nova"), 0o755); err != nil {
		t.Fatal(err)
	}

	sp := DiscoverScopePaths(root)
	if sp.Project != filepath.Join(root, ".nova", "config.yaml") {
		t.Errorf("Project = %s", sp.Project)
	}
	if sp.User != filepath.Join(root, ".nova", "config.local.yaml") {
		t.Errorf("User = %s", sp.User)
	}

	// Outside a project only global resolves.
	sp = DiscoverScopePaths(t.TempDir())
	if sp.Project != "" || sp.User != "" {
		t.Errorf("expected empty project/user paths, got %+v", sp)
	}
	if sp.Global == "" {
		t.Error("global path should always resolve")
	}
}
