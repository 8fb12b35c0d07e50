package marketplace

import "github.com/cockroachdb/errors"

// Sentinel errors for marketplace operations. Callers match with errors.Is;
// context-specific detail is attached at the return site.
var (
	// ErrManifestNotFound indicates a fetched source has no marketplace.json
	// at its root.
	ErrManifestNotFound = errors.New("marketplace manifest not found")

	// ErrManifestInvalid indicates marketplace.json exists but is malformed
	// or violates the manifest schema.
	ErrManifestInvalid = errors.New("marketplace manifest invalid")

	// ErrAlreadyExists indicates a marketplace with the same name or source
	// is already configured.
	ErrAlreadyExists = errors.New("marketplace already exists")

	// ErrNotFound indicates no configured marketplace matches the given name.
	ErrNotFound = errors.New("marketplace not found")

	// ErrFetch indicates the source could not be retrieved.
	ErrFetch = errors.New("fetching marketplace source failed")

	// ErrRemove indicates installed files could not be deleted. Config and
	// state are left untouched so the operation can be retried.
	ErrRemove = errors.New("removing marketplace files failed")
)
