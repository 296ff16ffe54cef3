// Package schemas validates matcher input and output documents against the
// JSON Schemas shipped in the top-level schemas directory.
package schemas

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	schemafiles "github.com/jonathan/teammatch/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// Schema names, as stored in the schemas directory.
const (
	Profile               = "profile.schema.json"
	Target                = "target.schema.json"
	ScoreRequest          = "score_request.schema.json"
	RankTargetsRequest    = "rank_targets_request.schema.json"
	RankCandidatesRequest = "rank_candidates_request.schema.json"
	Matches               = "matches.schema.json"
	TeammateRequest       = "teammate_request.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// compileAll compiles every embedded schema once. Each schema is compiled
// with all the others registered so cross-file $refs resolve by $id.
func compileAll() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		names, err := fs.Glob(schemafiles.FS, "*.schema.json")
		if err != nil {
			compileErr = &SchemaLoadError{Path: "schemas", Message: "failed to list schemas", Cause: err}
			return
		}

		sources := make(map[string][]byte, len(names))
		for _, name := range names {
			data, err := fs.ReadFile(schemafiles.FS, name)
			if err != nil {
				compileErr = &SchemaLoadError{Path: name, Message: "failed to read schema", Cause: err}
				return
			}
			sources[name] = data
		}

		out := make(map[string]*gojsonschema.Schema, len(names))
		for _, name := range names {
			sl := gojsonschema.NewSchemaLoader()
			for other, data := range sources {
				if other == name {
					continue
				}
				if err := sl.AddSchemas(gojsonschema.NewBytesLoader(data)); err != nil {
					compileErr = &SchemaLoadError{Path: other, Message: "failed to register schema", Cause: err}
					return
				}
			}
			schema, err := sl.Compile(gojsonschema.NewBytesLoader(sources[name]))
			if err != nil {
				compileErr = &SchemaLoadError{Path: name, Message: "failed to compile schema", Cause: err}
				return
			}
			out[name] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

// Validate checks document against the named embedded schema.
func Validate(name string, document []byte) error {
	all, err := compileAll()
	if err != nil {
		return err
	}
	schema, ok := all[name]
	if !ok {
		return &SchemaLoadError{Path: name, Message: "unknown schema"}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	return resultError(name, result)
}

// ValidateFile reads path and validates it against the named schema.
func ValidateFile(name, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Validate(name, data)
}

func resultError(schema string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: schema,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
