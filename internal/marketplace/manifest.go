package marketplace

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/novahq/nova/pkg/fileutil"
)

// ManifestFilename is the catalog file expected at the root of every
// marketplace tree.
const ManifestFilename = "marketplace.json"

//go:embed schema/marketplace.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Manifest is the parsed marketplace.json catalog. Only the bundles list is
// required; everything else is informational.
type Manifest struct {
	Name        string   `json:"name,omitempty"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Owner       *Contact `json:"owner,omitempty"`
	Bundles     []Bundle `json:"bundles"`
}

// Bundle is one catalog entry in a manifest.
type Bundle struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Category    string   `json:"category,omitempty"`
	Version     string   `json:"version,omitempty"`
	Author      *Contact `json:"author,omitempty"`
}

// Contact identifies a marketplace owner or bundle author.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Metadata is the derived summary of a manifest. It is recomputed from the
// manifest file on demand and never persisted independently.
type Metadata struct {
	Description string
	BundleCount int
}

// Metadata returns the derived summary of the manifest.
func (m *Manifest) Metadata() Metadata {
	return Metadata{
		Description: m.Description,
		BundleCount: len(m.Bundles),
	}
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = errors.Wrap(err, "unmarshaling manifest schema")
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("marketplace.schema.json", doc); err != nil {
			compileErr = errors.Wrap(err, "adding schema resource")
			return
		}
		compiledSchema, compileErr = c.Compile("marketplace.schema.json")
		if compileErr != nil {
			compileErr = errors.Wrap(compileErr, "compiling manifest schema")
		}
	})
	return compiledSchema, compileErr
}

// ReadManifest locates and validates marketplace.json in dir. This is the
// single entry point for manifest parsing; every caller that needs manifest
// content goes through it so all call sites agree on existence and
// validation behavior.
//
// A missing file returns ErrManifestNotFound naming the expected path.
// Malformed JSON or schema violations return ErrManifestInvalid with
// field-level detail.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFilename)

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithDetailf(ErrManifestNotFound, "expected manifest at %s", path)
		}
		return nil, errors.Wrapf(err, "reading manifest at %s", path)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Mark(
			errors.WithDetailf(errors.Wrap(err, "parsing manifest JSON"), "manifest at %s", path),
			ErrManifestInvalid)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(inst); err != nil {
		detail := validationDetail(err)
		return nil, errors.Mark(
			errors.WithDetailf(errors.Newf("manifest schema violation: %s", detail), "manifest at %s", path),
			ErrManifestInvalid)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding manifest"), ErrManifestInvalid)
	}

	// Bundle versions are optional but must be valid semver when present.
	for i, b := range manifest.Bundles {
		if b.Version == "" {
			continue
		}
		if _, err := semver.NewVersion(b.Version); err != nil {
			return nil, errors.Mark(
				errors.Newf("manifest schema violation: bundles[%d].version: %q is not valid semver", i, b.Version),
				ErrManifestInvalid)
		}
	}

	return &manifest, nil
}

// ReadMetadata returns the manifest summary for dir, degrading to an empty
// Metadata when the manifest is missing or malformed. Listing and show
// flows use this so a damaged install renders as degraded instead of
// failing the whole operation.
func ReadMetadata(dir string) Metadata {
	manifest, err := ReadManifest(dir)
	if err != nil {
		return Metadata{}
	}
	return manifest.Metadata()
}

// validationDetail flattens a jsonschema validation error into per-field
// messages.
func validationDetail(err error) string {
	ve := &jsonschema.ValidationError{}
	if !errors.As(err, &ve) {
		return err.Error()
	}

	var parts []string
	collectCauses(ve, &parts)
	if len(parts) == 0 {
		return ve.Error()
	}
	return strings.Join(parts, "; ")
}

func collectCauses(ve *jsonschema.ValidationError, parts *[]string) {
	if len(ve.Causes) == 0 {
		field := "/" + strings.Join(ve.InstanceLocation, "/")
		msg := ve.Error()
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}
		*parts = append(*parts, field+": "+msg)
		return
	}
	for _, cause := range ve.Causes {
		collectCauses(cause, parts)
	}
}
