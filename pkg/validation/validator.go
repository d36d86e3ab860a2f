package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

const schemaURL = "https://nasdeck.dev/schema/organizer.json"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce  sync.Once
	schema      *jsonschema.Schema
	schemaError error
)

// Schema returns the JSON Schema that persisted documents must satisfy.
func Schema() []byte {
	return bytes.Clone(schemaJSON)
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaError = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		schema, schemaError = compiler.Compile(schemaURL)
	})
	return schema, schemaError
}

// Validate checks raw against the organizer schema, decodes it and returns
// the normalized organizer. The organizer is nil whenever result.Valid is false.
func Validate(raw []byte) (*organizer.Organizer, *Result) {
	result := newResult()

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		result.AddError(NewInvalidJSONError(err.Error()))
		return nil, result
	}
	if doc == nil {
		result.AddError(NewSchemaError("", "document is null"))
		return nil, result
	}

	s, err := compiledSchema()
	if err != nil {
		result.AddError(NewSchemaError("", fmt.Sprintf("schema compilation error: %v", err)))
		return nil, result
	}
	if err := s.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			parseSchemaErrors(verr, result)
		} else {
			result.AddError(NewSchemaError("", err.Error()))
		}
		return nil, result
	}

	var o organizer.Organizer
	if err := json.Unmarshal(raw, &o); err != nil {
		result.AddError(NewInvalidJSONError(err.Error()))
		return nil, result
	}
	normalize(&o, result)
	return &o, result
}

// ValidateOrganizer runs an in-memory organizer through the same checks as a
// persisted document. The returned organizer is a normalized copy; o is not
// modified.
func ValidateOrganizer(o *organizer.Organizer) (*organizer.Organizer, *Result) {
	if o == nil {
		result := newResult()
		result.AddError(&FieldError{Code: ErrCodeRequired, Message: "organizer is nil"})
		return nil, result
	}
	raw, err := json.Marshal(o)
	if err != nil {
		result := newResult()
		result.AddError(NewSchemaError("", fmt.Sprintf("encoding organizer: %v", err)))
		return nil, result
	}
	return Validate(raw)
}

// ValidateResources checks a provider's resource list. Empty ids are errors;
// repeated ids are warnings since later duplicates are ignored.
func ValidateResources(resources []organizer.Resource) *Result {
	result := newResult()
	seen := make(map[string]bool, len(resources))
	for i, r := range resources {
		path := fmt.Sprintf("resources[%d]", i)
		switch {
		case strings.TrimSpace(r.ID) == "":
			result.AddError(&FieldError{
				Path:    path,
				Code:    ErrCodeRequired,
				Message: "resource id is required",
				Hint:    "Every resource needs a stable, non-empty id",
			})
		case seen[r.ID]:
			result.AddWarning(&FieldError{
				Path:    path,
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("resource id %q listed more than once", r.ID),
			})
		}
		seen[r.ID] = true
	}
	return result
}

// parseSchemaErrors flattens the leaves of a schema validation error.
func parseSchemaErrors(err *jsonschema.ValidationError, result *Result) {
	if len(err.Causes) == 0 {
		result.AddError(NewSchemaError(extractFieldFromPath(err.InstanceLocation), err.Message))
		return
	}
	for _, cause := range err.Causes {
		parseSchemaErrors(cause, result)
	}
}

// extractFieldFromPath converts a JSON Pointer to dot notation.
func extractFieldFromPath(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.ReplaceAll(path, "/", ".")
	path = strings.ReplaceAll(path, "~1", "/")
	return strings.ReplaceAll(path, "~0", "~")
}
