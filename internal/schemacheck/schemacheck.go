// Package schemacheck validates generated documents against their JSON schemas.
package schemacheck

import (
	"embed"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"github.com/GabrielNunesIT/raml-converter/internal/domain"
)

// Schema names.
const (
	Collection  = "collection"
	Environment = "environment"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Report is the outcome of validating one document.
type Report struct {
	Valid    bool
	Problems []string
}

// Validator holds the compiled schemas. It is safe for concurrent use.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	sources := make(map[string][]byte)

	for _, name := range []string{Collection, Environment} {
		data, err := schemaFS.ReadFile("schemas/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s schema: %w", name, err)
		}

		sources[name] = data
	}

	return Compile(sources)
}

// Compile builds a validator from JSON schema sources keyed by schema name.
func Compile(sources map[string][]byte) (*Validator, error) {
	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(sources))}

	for name, data := range sources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
		}

		v.schemas[name] = schema
	}

	return v, nil
}

// Names returns the known schema names.
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Validate checks document against the named schema. The error is non-nil only
// when validation could not run at all.
func (v *Validator) Validate(schemaName string, document any) (Report, error) {
	schema, ok := v.schemas[schemaName]
	if !ok {
		return Report{}, fmt.Errorf("unknown schema %q", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return Report{}, fmt.Errorf("failed to validate %s: %w", schemaName, err)
	}

	report := Report{Valid: result.Valid()}
	for _, e := range result.Errors() {
		report.Problems = append(report.Problems, e.String())
	}

	return report, nil
}

// Check validates document and turns an invalid report into a
// *domain.SchemaValidationError.
func (v *Validator) Check(schemaName string, document any) error {
	report, err := v.Validate(schemaName, document)
	if err != nil {
		return err
	}
	if !report.Valid {
		return &domain.SchemaValidationError{Schema: schemaName, Problems: report.Problems}
	}

	return nil
}
