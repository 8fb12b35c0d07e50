package marketplace

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/novahq/nova/internal/git"
	"github.com/novahq/nova/internal/marketplace/source"
	"github.com/novahq/nova/internal/settings"
	"github.com/novahq/nova/pkg/fileutil"
)

// Fetcher retrieves marketplace sources into temporary staging directories.
// Git-backed sources are cloned; local directories are copied so the
// original path is never mutated.
type Fetcher struct {
	CloneDepth   int
	CloneTimeout time.Duration
}

// NewFetcher returns a Fetcher configured from settings.
func NewFetcher() *Fetcher {
	return &Fetcher{
		CloneDepth:   settings.CloneDepth(),
		CloneTimeout: settings.CloneTimeout(),
	}
}

// Fetch retrieves src into a fresh temporary directory and returns its path
// along with a cleanup function. The cleanup function is always safe to
// call, including after the directory has been promoted elsewhere. On error
// the temporary directory is already removed and the cleanup function is a
// no-op.
func (f *Fetcher) Fetch(ctx context.Context, src source.Source) (string, func(), error) {
	dir, err := os.MkdirTemp("", "nova-marketplace-*")
	if err != nil {
		return "", nil, errors.Mark(errors.Wrap(err, "creating staging directory"), ErrFetch)
	}
	cleanup := func() { os.RemoveAll(dir) }

	fail := func(err error) (string, func(), error) {
		cleanup()
		return "", func() {}, errors.Mark(err, ErrFetch)
	}

	switch {
	case src.IsGitBacked():
		if !git.IsInstalled() {
			return fail(errors.WithHint(git.ErrNotInstalled,
				"Install git and ensure it is on your PATH."))
		}

		timeout := f.CloneTimeout
		if timeout <= 0 {
			timeout = settings.CloneTimeout()
		}
		cloneCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := git.Clone(cloneCtx, src.CloneURL(), dir, f.CloneDepth); err != nil {
			return fail(err)
		}

	case src.Kind == source.KindLocal:
		info, err := os.Stat(src.Path)
		if err != nil {
			return fail(errors.Wrapf(err, "local source %s", src.Path))
		}
		if !info.IsDir() {
			return fail(errors.Newf("local source %s is not a directory", src.Path))
		}
		if err := fileutil.CopyDir(src.Path, dir); err != nil {
			return fail(errors.Wrapf(err, "copying local source %s", src.Path))
		}

	default:
		return fail(errors.Newf("unsupported source kind %q", src.Kind))
	}

	return dir, cleanup, nil
}
