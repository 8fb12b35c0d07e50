// Package settings provides process-wide tool settings for nova using Viper.
//
// Settings cover stable operational knobs (directory and file names, git
// clone behavior) rather than user configuration, which lives in the scoped
// YAML files managed by internal/config. Every setting has a default and can
// be overridden through NOVA_-prefixed environment variables, e.g.
// NOVA_GIT_CLONE_TIMEOUT=30s.
package settings

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

// AppName is the application name used for directory and file naming.
const AppName = "nova"

var (
	v    *viper.Viper
	once sync.Once
)

// Init initializes the settings registry with defaults and environment
// variable support. It is safe to call multiple times; only the first call
// takes effect. All accessors call Init themselves, so explicit
// initialization is only needed to front-load the work.
func Init() {
	once.Do(func() {
		v = viper.New()

		v.SetEnvPrefix("NOVA")
		v.AutomaticEnv()

		v.SetDefault("paths.config_dir_name", AppName)
		v.SetDefault("paths.project_subdir_name", "."+AppName)
		v.SetDefault("paths.global_config_filename", "config.yaml")
		v.SetDefault("paths.project_config_filename", "config.yaml")
		v.SetDefault("paths.user_config_filename", "config.local.yaml")
		v.SetDefault("paths.data_dir_name", AppName)
		v.SetDefault("paths.marketplaces_dir_name", "marketplaces")
		v.SetDefault("datastore.filename", "data.json")
		v.SetDefault("git.clone_depth", 1)
		v.SetDefault("git.clone_timeout", "5m")
	})
}

// ConfigDirName returns the directory name under the XDG config home that
// holds the global config file.
func ConfigDirName() string {
	Init()
	return v.GetString("paths.config_dir_name")
}

// ProjectSubdirName returns the marker directory name that identifies a
// project root (and holds the project-scoped config files).
func ProjectSubdirName() string {
	Init()
	return v.GetString("paths.project_subdir_name")
}

// GlobalConfigFilename returns the global config file name.
func GlobalConfigFilename() string {
	Init()
	return v.GetString("paths.global_config_filename")
}

// ProjectConfigFilename returns the project-scoped config file name.
func ProjectConfigFilename() string {
	Init()
	return v.GetString("paths.project_config_filename")
}

// UserConfigFilename returns the user-scoped (local override) config file name.
func UserConfigFilename() string {
	Init()
	return v.GetString("paths.user_config_filename")
}

// DataDirName returns the directory name under the XDG data home that holds
// nova's installed data.
func DataDirName() string {
	Init()
	return v.GetString("paths.data_dir_name")
}

// MarketplacesDirName returns the directory name under the data directory
// that holds installed marketplace trees.
func MarketplacesDirName() string {
	Init()
	return v.GetString("paths.marketplaces_dir_name")
}

// DataStoreFilename returns the file name used for namespaced datastore files.
func DataStoreFilename() string {
	Init()
	return v.GetString("datastore.filename")
}

// CloneDepth returns the git clone depth for marketplace fetches.
func CloneDepth() int {
	Init()
	return v.GetInt("git.clone_depth")
}

// CloneTimeout returns the timeout applied to git clone and pull operations.
func CloneTimeout() time.Duration {
	Init()
	d := v.GetDuration("git.clone_timeout")
	if d <= 0 {
		return 5 * time.Minute
	}
	return d
}
