// Package schema validates progress documents against the embedded v2 JSON
// Schema. Validation is pure: no I/O, no mutation of the document.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mattsolo1/grove-progress/errors"
)

//go:embed progress.embedded.schema.json
var embeddedSchemaData []byte

// SupportedVersion is the progress schema version this build understands.
const SupportedVersion = 2

// Validator validates progress documents against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("progress.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("progress.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a progress document against the v2 schema. The version
// field is checked before anything else is trusted: a missing or unsupported
// version fails immediately with that single reason, regardless of what else
// is wrong with the document.
//
// doc may be the typed document struct or the raw decoded JSON value.
func (v *Validator) Validate(doc interface{}) error {
	// Normalize to plain JSON-like values for both the version gate and the
	// schema library.
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "marshal document for validation")
	}

	var data interface{}
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "unmarshal document for validation")
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		return errors.SchemaValidation("document is not a JSON object")
	}

	version, ok := obj["version"]
	if !ok {
		return errors.SchemaValidation("missing required field: version")
	}
	if num, ok := version.(float64); !ok || num != SupportedVersion {
		return errors.SchemaValidation(fmt.Sprintf("expected version %d, got %v", SupportedVersion, version))
	}

	if err := v.schema.Validate(data); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var messages []string
			collectErrors(validationErr, &messages)
			if len(messages) == 0 {
				messages = append(messages, validationErr.Message)
			}
			return errors.SchemaValidation(strings.Join(messages, "; "))
		}
		return errors.SchemaValidation(err.Error())
	}

	return nil
}

// collectErrors recursively collects the leaf validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*messages = append(*messages, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}

var (
	defaultValidator *Validator
	defaultErr       error
	defaultOnce      sync.Once
)

// Validate checks a document against the shared embedded-schema validator.
func Validate(doc interface{}) error {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = NewValidator()
	})
	if defaultErr != nil {
		return errors.Wrap(defaultErr, errors.ErrCodeInternal, "initialize schema validator")
	}
	return defaultValidator.Validate(doc)
}
