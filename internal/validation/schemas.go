package validation

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile_schema.json
var profileSchemaJSON []byte

// ProfileValidator checks a persisted profile document against the current
// schema before it is decoded into the in-memory brain.
type ProfileValidator struct {
	schema *gojsonschema.Schema
}

// NewProfileValidator compiles the embedded profile schema.
func NewProfileValidator() (*ProfileValidator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(profileSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile schema: %w", err)
	}
	return &ProfileValidator{schema: schema}, nil
}

// ValidateProfile validates raw document bytes. The document must already be
// migrated to the current schema version.
func (pv *ProfileValidator) ValidateProfile(data []byte) *ValidationResult {
	result, err := pv.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "document",
				Message: fmt.Sprintf("validation error: %v", err),
			}},
		}
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return vr
}

// ValidationResult represents the result of a validation operation.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("validation error in field '%s': %s", ve.Field, ve.Message)
}
