package paths

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".nova"), 0o755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "pkg", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		start string
	}{
		{"from root itself", root},
		{"from nested directory", nested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindProjectRoot(tt.start)
			if err != nil {
				t.Fatalf("FindProjectRoot(%s) error: %v", tt.start, err)
			}
			if got != root {
				t.Errorf("FindProjectRoot(%s) = %s, want %s", tt.start, got, root)
			}
		})
	}
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := FindProjectRoot(dir)
	if !errors.Is(err, ErrProjectRootNotFound) {
		t.Errorf("expected ErrProjectRootNotFound, got %v", err)
	}
}

func TestConfigPaths(t *testing.T) {
	root := "/work/project"

	if got := ProjectConfigPath(root); got != filepath.Join(root, ".nova", "config.yaml") {
		t.Errorf("ProjectConfigPath = %s", got)
	}
	if got := UserConfigPath(root); got != filepath.Join(root, ".nova", "config.local.yaml") {
		t.Errorf("UserConfigPath = %s", got)
	}
	if got := GlobalConfigPath(); !strings.HasSuffix(got, filepath.Join("nova", "config.yaml")) {
		t.Errorf("GlobalConfigPath = %s", got)
	}
}

func TestMarketplaceDirs(t *testing.T) {
	dir := MarketplaceInstallDir("bundles")
	if !strings.HasSuffix(dir, filepath.Join("nova", "marketplaces", "bundles")) {
		t.Errorf("MarketplaceInstallDir = %s", dir)
	}
	if filepath.Dir(dir) != MarketplacesDir() {
		t.Errorf("install dir should be directly under MarketplacesDir")
	}
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "a", "b", "c")

	if err := EnsureDir(target, 0); err != nil {
		t.Fatalf("EnsureDir error: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat after EnsureDir: %v", err)
	}
	if !info.IsDir() {
		t.Error("EnsureDir did not create a directory")
	}

	// Idempotent
	if err := EnsureDir(target, 0); err != nil {
		t.Errorf("EnsureDir second call error: %v", err)
	}
}
