// Package schema reflects JSON Schemas from Go configuration types and
// validates decoded documents against them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	reflector "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Reflect builds the schema for v. Property names follow the toml tags, and
// only fields tagged jsonschema:"required" are required. Unknown keys are
// allowed.
func Reflect(v interface{}) *reflector.Schema {
	r := &reflector.Reflector{
		AllowAdditionalProperties:  true,
		ExpandedStruct:             true,
		Anonymous:                  true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "toml",
	}
	return r.Reflect(v)
}

// Validator validates configuration documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
	source []byte
}

// NewValidator reflects the schema of v and compiles it.
func NewValidator(name string, v interface{}) (*Validator, error) {
	source, err := json.MarshalIndent(Reflect(v), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reflected schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: compiled, source: source}, nil
}

// JSON returns the reflected schema document.
func (v *Validator) JSON() []byte {
	return v.source
}

// Validate validates a decoded document. The document is normalized through
// JSON first so values from any decoder compare as plain JSON types.
func (v *Validator) Validate(document interface{}) error {
	jsonData, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal document to JSON for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", location, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
