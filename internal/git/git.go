// Package git provides Git operation wrappers for cloning and updating
// repositories via the system git binary.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotInstalled indicates the git binary is not available on PATH.
var ErrNotInstalled = errors.New("git is not installed")

var versionPattern = regexp.MustCompile(`git version (\d+\.\d+\.\d+)`)

// IsURL returns true if s looks like a git repository URL.
// It checks for:
//   - URLs with a recognized scheme (http, https, git, ssh)
//   - URLs ending with ".git"
//   - SSH-style URLs starting with "git@"
func IsURL(s string) bool {
	for _, scheme := range []string{"http://", "https://", "git://", "ssh://"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	if strings.HasSuffix(s, ".git") {
		return true
	}
	if strings.HasPrefix(s, "git@") {
		return true
	}
	return false
}

// IsInstalled returns true if the git command is available.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Version returns the installed git version string (e.g., "2.39.0").
func Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "git", "--version").Output()
	if err != nil {
		if _, lookErr := exec.LookPath("git"); lookErr != nil {
			return "", ErrNotInstalled
		}
		return "", errors.Wrap(err, "checking git version")
	}

	match := versionPattern.FindStringSubmatch(string(out))
	if match == nil {
		return "", errors.Newf("could not parse git version from %q", strings.TrimSpace(string(out)))
	}
	return match[1], nil
}

// Clone clones a git repository from url to dest with the specified depth.
// Stderr is captured and included in the returned error; the context bounds
// the operation so a hung network call fails instead of blocking forever.
func Clone(ctx context.Context, url, dest string, depth int) error {
	depthArg := fmt.Sprintf("--depth=%d", depth)
	cmd := exec.CommandContext(ctx, "git", "clone", depthArg, url, dest)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "git clone of %s timed out", url)
		}
		return errors.Wrapf(err, "git clone failed: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Pull performs a fast-forward-only pull in the specified repository directory.
// Stderr is captured and included in the returned error.
func Pull(ctx context.Context, repoPath string) error {
	cmd := exec.CommandContext(ctx, "git", "-C", repoPath, "pull", "--ff-only")

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "git pull in %s timed out", repoPath)
		}
		return errors.Wrapf(err, "git pull failed: %s", strings.TrimSpace(stderr.String()))
	}
	return nil
}

// IsRepository checks if path holds a git repository by verifying the
// existence of a .git directory.
func IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && info.IsDir()
}
