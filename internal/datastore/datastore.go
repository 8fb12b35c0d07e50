// Package datastore provides namespaced, atomic key/value persistence as
// JSON on disk.
//
// Each namespace maps to a single data.json file holding a JSON object
// keyed by record name. Writes rewrite the whole file atomically via a
// temp-file-then-rename, so a crash mid-write never leaves a truncated
// record behind.
package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/novahq/nova/internal/paths"
	"github.com/novahq/nova/internal/settings"
	"github.com/novahq/nova/pkg/fileutil"
)

// Sentinel errors for datastore operations.
var (
	// ErrKeyNotFound indicates the requested key does not exist in the
	// namespace. Callers treat this as "already gone" in removal flows.
	ErrKeyNotFound = errors.New("key not found")
)

// Store persists keyed JSON records for one namespace.
type Store struct {
	namespace string
	baseDir   string
}

// New creates a store for the given namespace rooted at nova's data
// directory.
func New(namespace string) *Store {
	return NewAt(namespace, paths.DataDir())
}

// NewAt creates a store for the given namespace rooted at baseDir.
// This variant allows overriding the data directory for testing.
func NewAt(namespace, baseDir string) *Store {
	return &Store{namespace: namespace, baseDir: baseDir}
}

// Load reads the record stored under key into v.
// Returns ErrKeyNotFound if the namespace file or the key does not exist.
func (s *Store) Load(key string, v any) error {
	records, err := s.read()
	if err != nil {
		return err
	}

	raw, ok := records[key]
	if !ok {
		return errors.WithDetailf(ErrKeyNotFound, "key %q not found in namespace %q", key, s.namespace)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decoding record %q in namespace %q", key, s.namespace)
	}
	return nil
}

// Save stores v under key, creating the namespace file if needed.
// The write replaces the whole namespace file atomically.
func (s *Store) Save(key string, v any) error {
	records, err := s.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding record %q in namespace %q", key, s.namespace)
	}
	records[key] = raw

	return s.write(records)
}

// Delete removes the record stored under key.
// Returns ErrKeyNotFound if the key is absent, so callers can distinguish
// "already gone" from an I/O failure.
func (s *Store) Delete(key string) error {
	records, err := s.read()
	if err != nil {
		return err
	}

	if _, ok := records[key]; !ok {
		return errors.WithDetailf(ErrKeyNotFound, "key %q not found in namespace %q", key, s.namespace)
	}
	delete(records, key)

	return s.write(records)
}

// Keys returns the keys present in the namespace, in unspecified order.
func (s *Store) Keys() ([]string, error) {
	records, err := s.read()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	return keys, nil
}

// filePath returns the namespace data file location:
// <baseDir>/<namespace>/data.json
func (s *Store) filePath() string {
	return filepath.Join(s.baseDir, s.namespace, settings.DataStoreFilename())
}

func (s *Store) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, errors.Wrapf(err, "reading namespace %q", s.namespace)
	}

	records := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "parsing namespace %q", s.namespace)
	}
	return records, nil
}

func (s *Store) write(records map[string]json.RawMessage) error {
	path := s.filePath()
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating namespace directory for %q", s.namespace)
	}

	if err := fileutil.AtomicWriteJSON(path, records); err != nil {
		return errors.Wrapf(err, "writing namespace %q", s.namespace)
	}
	return nil
}
