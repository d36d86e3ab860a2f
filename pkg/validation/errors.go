package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by Result.Err when validation fails.
var ErrInvalid = errors.New("invalid organizer document")

// Error codes for machine-readable identification.
const (
	ErrCodeInvalidJSON = "invalid_json"
	ErrCodeSchema      = "schema"
	ErrCodeRequired    = "required"
	ErrCodeDuplicate   = "duplicate"
	ErrCodeNormalized  = "normalized"
	ErrCodeInvariant   = "invariant"
)

// FieldError describes one problem found in a document.
type FieldError struct {
	// Path is the dotted location of the offending value, empty for the document itself.
	Path string `json:"path"`

	// Code is a machine-readable error code
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Hint provides a user-friendly suggestion for fixing the error
	Hint string `json:"hint,omitempty"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Result contains the outcome of validation.
type Result struct {
	// Valid is true if validation passed
	Valid bool `json:"valid"`

	// Errors contains validation errors (when Valid is false)
	Errors []*FieldError `json:"errors,omitempty"`

	// Warnings contains repairs made during normalization and tolerated
	// structural problems
	Warnings []*FieldError `json:"warnings,omitempty"`
}

// AddError adds a validation error to the result
func (r *Result) AddError(err *FieldError) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a validation warning to the result
func (r *Result) AddWarning(warn *FieldError) {
	r.Warnings = append(r.Warnings, warn)
}

// HasErrors returns true if there are any validation errors
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Merge combines another result into this one
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	if !other.Valid {
		r.Valid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Err returns nil for a valid result, otherwise an error wrapping ErrInvalid
// that lists every problem.
func (r *Result) Err() error {
	if r.Valid && !r.HasErrors() {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%w: %s", ErrInvalid, msgs[0])
	}
	return fmt.Errorf("%w: %d problems: %s", ErrInvalid, len(msgs), strings.Join(msgs, "; "))
}

func newResult() *Result {
	return &Result{Valid: true}
}

// NewInvalidJSONError creates an error for malformed JSON
func NewInvalidJSONError(message string) *FieldError {
	return &FieldError{
		Code:    ErrCodeInvalidJSON,
		Message: fmt.Sprintf("invalid JSON: %s", message),
		Hint:    "Ensure the file is valid JSON; restore it from a backup if it was truncated",
	}
}

// NewSchemaError creates an error for JSON Schema validation failure
func NewSchemaError(path, message string) *FieldError {
	return &FieldError{
		Path:    path,
		Code:    ErrCodeSchema,
		Message: message,
		Hint:    "Check the document against the organizer schema (nasdeck validate --schema)",
	}
}

func normalized(path, format string, args ...any) *FieldError {
	return &FieldError{Path: path, Code: ErrCodeNormalized, Message: fmt.Sprintf(format, args...)}
}
