// Package schemas provides JSON Schema validation for the job and candidate
// documents supplied to the CLI and API.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed job.schema.json
var jobSchema string

//go:embed candidates.schema.json
var candidatesSchema string

//go:embed proposals.schema.json
var proposalsSchema string

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Schema  string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Schema, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Schema, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateJobDocument validates a job JSON document (title, criteria,
// thresholds) against the embedded schema.
func ValidateJobDocument(jsonContent []byte) error {
	return validateAgainst("job", jobSchema, jsonContent)
}

// ValidateCandidatesDocument validates a candidates JSON document against
// the embedded schema.
func ValidateCandidatesDocument(jsonContent []byte) error {
	return validateAgainst("candidates", candidatesSchema, jsonContent)
}

// ValidateProposalsDocument validates a weight proposals JSON document
// against the embedded schema.
func ValidateProposalsDocument(jsonContent []byte) error {
	return validateAgainst("proposals", proposalsSchema, jsonContent)
}

func validateAgainst(name, schemaContent string, jsonContent []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewBytesLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Schema:  name,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
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
