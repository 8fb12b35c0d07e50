// Package source classifies free-form marketplace source strings into typed
// references: hosted owner/repo shorthands, git URLs, and local paths.
//
// Parsing is pure classification with no side effects beyond checking
// whether a candidate local path exists. Sources are immutable once parsed
// and compare structurally: two sources are the same only if kind and
// fields match exactly.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind discriminates source variants.
type Kind string

const (
	// KindHosted is an owner/repo shorthand for a hosted repository.
	KindHosted Kind = "github"
	// KindGit is a full git URL.
	KindGit Kind = "git"
	// KindLocal is a local filesystem path.
	KindLocal Kind = "local"
)

// ErrInvalidSource indicates a source string that matches none of the
// accepted formats.
var ErrInvalidSource = errors.New("invalid marketplace source")

// hostedPattern matches owner/repo shorthands: a single slash with
// identifier segments on both sides.
var hostedPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+/[a-zA-Z0-9._-]+$`)

// Source is a typed marketplace source reference. Exactly the fields for
// the discriminating Kind are populated; the zero value is not a valid
// source.
type Source struct {
	Kind  Kind   `json:"type" yaml:"type"`
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo  string `json:"repo,omitempty" yaml:"repo,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Path  string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Hosted returns a hosted-repository source.
func Hosted(owner, repo string) Source {
	return Source{Kind: KindHosted, Owner: owner, Repo: repo}
}

// Git returns a git URL source.
func Git(url string) Source {
	return Source{Kind: KindGit, URL: url}
}

// Local returns a local path source.
func Local(path string) Source {
	return Source{Kind: KindLocal, Path: path}
}

// Parse classifies raw into a typed Source. workingDir anchors relative
// local paths; if empty, the process working directory is used.
//
// Formats are tried in order: owner/repo shorthand, git URL, existing local
// path. A string matching none of them returns ErrInvalidSource with the
// accepted formats attached as a hint.
func Parse(raw, workingDir string) (Source, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Source{}, hinted(errors.WithDetail(ErrInvalidSource, "source cannot be empty"))
	}

	if hostedPattern.MatchString(trimmed) {
		owner, repo, _ := strings.Cut(trimmed, "/")
		return Hosted(owner, repo), nil
	}

	if isGitURL(trimmed) {
		return Git(trimmed), nil
	}

	if path, ok := resolveLocalPath(trimmed, workingDir); ok {
		return Local(path), nil
	}

	return Source{}, hinted(errors.WithDetailf(ErrInvalidSource, "cannot parse %q", raw))
}

func hinted(err error) error {
	return errors.WithHint(err,
		"accepted formats: owner/repo, a git URL (https://, git://, ssh://, git@, or ending in .git), or an existing local path")
}

func isGitURL(s string) bool {
	for _, scheme := range []string{"http://", "https://", "git://", "ssh://"} {
		if strings.HasPrefix(s, scheme) {
			return true
		}
	}
	return strings.HasSuffix(s, ".git") || strings.HasPrefix(s, "git@")
}

// resolveLocalPath resolves s against workingDir and reports whether the
// resulting path exists.
func resolveLocalPath(s, workingDir string) (string, bool) {
	path := s
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	if !filepath.IsAbs(path) {
		base := workingDir
		if base == "" {
			wd, err := os.Getwd()
			if err != nil {
				return "", false
			}
			base = wd
		}
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)

	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

// DeriveName returns the marketplace name implied by the source: the repo
// segment for hosted sources, the final path segment (minus any .git
// suffix) for git URLs, and the directory name for local paths. Names are
// lowercased.
func (s Source) DeriveName() string {
	switch s.Kind {
	case KindHosted:
		return strings.ToLower(s.Repo)
	case KindGit:
		url := s.URL
		// SSH shorthand: git@host:owner/repo.git
		if strings.HasPrefix(url, "git@") {
			if idx := strings.LastIndex(url, ":"); idx != -1 {
				url = url[idx+1:]
			}
		}
		name := filepath.Base(strings.TrimSuffix(url, "/"))
		name = strings.TrimSuffix(name, ".git")
		return strings.ToLower(name)
	case KindLocal:
		return strings.ToLower(filepath.Base(filepath.Clean(s.Path)))
	default:
		return ""
	}
}

// CloneURL returns the URL used to clone the source. Local sources have no
// clone URL and return an empty string.
func (s Source) CloneURL() string {
	switch s.Kind {
	case KindHosted:
		return fmt.Sprintf("https://github.com/%s/%s.git", s.Owner, s.Repo)
	case KindGit:
		return s.URL
	default:
		return ""
	}
}

// IsGitBacked returns true for sources fetched via git clone.
func (s Source) IsGitBacked() bool {
	return s.Kind == KindHosted || s.Kind == KindGit
}

// String returns the display form of the source.
func (s Source) String() string {
	switch s.Kind {
	case KindHosted:
		return s.Owner + "/" + s.Repo
	case KindGit:
		return s.URL
	case KindLocal:
		return s.Path
	default:
		return ""
	}
}

// Validate checks that the populated fields match the Kind.
func (s Source) Validate() error {
	switch s.Kind {
	case KindHosted:
		if s.Owner == "" || s.Repo == "" {
			return errors.WithDetail(ErrInvalidSource, "hosted source requires owner and repo")
		}
	case KindGit:
		if s.URL == "" {
			return errors.WithDetail(ErrInvalidSource, "git source requires a URL")
		}
	case KindLocal:
		if s.Path == "" {
			return errors.WithDetail(ErrInvalidSource, "local source requires a path")
		}
	default:
		return errors.WithDetailf(ErrInvalidSource, "unknown source type %q", string(s.Kind))
	}
	return nil
}
