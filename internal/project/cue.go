package project

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/relkit/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// schemaDef is the name of the manifest definition in schema.cue.
const schemaDef = "#Project"

// ManifestLoader decodes relkit.cue manifests against the embedded schema.
type ManifestLoader struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewManifestLoader compiles the embedded schema.
func NewManifestLoader() (*ManifestLoader, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath(schemaDef))
	if !def.Exists() {
		return nil, fmt.Errorf("schema does not define %s", schemaDef)
	}

	return &ManifestLoader{ctx: ctx, schema: def}, nil
}

// LoadFile reads and decodes the manifest at path.
func (l *ManifestLoader) LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, oerrors.NewNotFoundError("manifest not found", path, "")
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return l.Load(path, data)
}

// Load unifies src with the schema, validates that every field is concrete
// and decodes the result. filename is used in error positions.
func (l *ManifestLoader) Load(filename string, src []byte) (*Manifest, error) {
	v := l.ctx.CompileBytes(src, cue.Filename(filename))
	if v.Err() != nil {
		return nil, cueValidationError(filename, v.Err(), "Check the manifest for CUE syntax errors")
	}

	unified := l.schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, cueValidationError(filename, err, "Required fields: name, author, license, url (all non-empty)")
	}

	var m Manifest
	if err := unified.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding manifest %s: %w", filename, err)
	}
	return &m, nil
}

// cueValidationError flattens CUE errors into a single DetailError. The path
// of the first error becomes the field.
func cueValidationError(location string, err error, hint string) error {
	var field string
	if errs := cueerrors.Errors(err); len(errs) > 0 {
		field = strings.Join(errs[0].Path(), ".")
	}
	msg := strings.TrimSpace(cueerrors.Details(err, nil))
	return oerrors.NewValidationError(msg, location, field, hint)
}
