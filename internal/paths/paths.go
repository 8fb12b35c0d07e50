package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"

	"github.com/novahq/nova/internal/settings"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrProjectRootNotFound indicates no enclosing project directory was found.
	ErrProjectRootNotFound = errors.New("project root not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// This is a thin wrapper around os.UserHomeDir for consistency.
// Note: It returns an empty string on error for backward compatibility.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// GlobalConfigPath returns the global configuration file path.
// Returns: <ConfigHome>/nova/config.yaml
func GlobalConfigPath() string {
	return filepath.Join(ConfigHome(), settings.ConfigDirName(), settings.GlobalConfigFilename())
}

// FindProjectRoot walks up from startDir looking for the project marker
// directory (.nova). It returns the first directory containing the marker.
// Returns ErrProjectRootNotFound if no ancestor contains the marker.
func FindProjectRoot(startDir string) (string, error) {
	dir := startDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, "resolving working directory")
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	dir = abs

	// Start from the containing directory when given a file.
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	marker := settings.ProjectSubdirName()
	for {
		candidate := filepath.Join(dir, marker)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.WithDetailf(ErrProjectRootNotFound, "no %s directory found above %s", marker, startDir)
		}
		dir = parent
	}
}

// ProjectConfigPath returns the project-scoped config file path for a
// project root: <projectRoot>/.nova/config.yaml
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, settings.ProjectSubdirName(), settings.ProjectConfigFilename())
}

// UserConfigPath returns the user-scoped (local override) config file path
// for a project root: <projectRoot>/.nova/config.local.yaml
func UserConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, settings.ProjectSubdirName(), settings.UserConfigFilename())
}

// DataDir returns nova's data directory.
// Returns: <DataHome>/nova/
func DataDir() string {
	return filepath.Join(DataHome(), settings.DataDirName())
}

// MarketplacesDir returns the directory holding installed marketplace trees.
// Returns: <DataHome>/nova/marketplaces/
func MarketplacesDir() string {
	return filepath.Join(DataDir(), settings.MarketplacesDirName())
}

// MarketplaceInstallDir returns the install location for a named marketplace.
// Returns: <DataHome>/nova/marketplaces/<name>/
func MarketplaceInstallDir(name string) string {
	return filepath.Join(MarketplacesDir(), name)
}
