// Package schemas validates screening request documents against the JSON
// Schemas embedded in the binary.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.schema.json
var schemaFS embed.FS

// Names of the embedded schemas.
const (
	ScreeningRequest     = "screening_request"
	BulkScreeningRequest = "bulk_screening_request"
	CriteriaRequest      = "criteria_request"
	JobListing           = "job_listing"
	Application          = "application"
	Applications         = "applications"
	Candidates           = "candidates"
	JobListings          = "job_listings"
)

const commonSchema = "common"

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
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

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Schema))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Messages returns one "field: message" line per error.
func (ve *ValidationError) Messages() []string {
	out := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		out = append(out, e.Field+": "+e.Message)
	}
	return out
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func schemaFile(name string) string {
	return "json/" + name + ".schema.json"
}

// compileAll loads the shared definitions once and compiles every request
// schema against them.
func compileAll() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		common, err := schemaFS.ReadFile(schemaFile(commonSchema))
		if err != nil {
			compileErr = &SchemaLoadError{Path: schemaFile(commonSchema), Message: "not embedded", Cause: err}
			return
		}

		out := make(map[string]*gojsonschema.Schema)
		for _, name := range Names() {
			data, err := schemaFS.ReadFile(schemaFile(name))
			if err != nil {
				compileErr = &SchemaLoadError{Path: schemaFile(name), Message: "not embedded", Cause: err}
				return
			}
			loader := gojsonschema.NewSchemaLoader()
			if err := loader.AddSchemas(gojsonschema.NewBytesLoader(common)); err != nil {
				compileErr = &SchemaLoadError{Path: schemaFile(commonSchema), Message: "invalid definitions", Cause: err}
				return
			}
			schema, err := loader.Compile(gojsonschema.NewBytesLoader(data))
			if err != nil {
				compileErr = &SchemaLoadError{Path: schemaFile(name), Message: "failed to compile", Cause: err}
				return
			}
			out[name] = schema
		}
		compiled = out
	})
	return compiled, compileErr
}

// Names lists the schemas available to Validate, sorted.
func Names() []string {
	names := []string{ScreeningRequest, BulkScreeningRequest, CriteriaRequest, JobListing, Application, Applications,
		Candidates, JobListings}
	sort.Strings(names)
	return names
}

// Validate checks a JSON document against the named embedded schema.
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
	return toValidationError(name, result)
}

// ValidateJSON validates the JSON file at jsonPath against the named
// embedded schema.
func ValidateJSON(name, jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", absPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	return Validate(name, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return toValidationError("", result)
}

func toValidationError(name string, result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
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
