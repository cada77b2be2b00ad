// Package validation defines the acceptance rules for every form-backed
// entity and reports violations as field-addressable errors.
package validation

import (
	"fmt"
	"strings"
)

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is the structured validation report for one entity. Validation
// is all-or-nothing per entity: any entry means the entity was rejected.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, e := range fe {
		sb.WriteString(fmt.Sprintf(" %s: %s;", e.Field, e.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// add appends a violation and returns the extended report.
func (fe FieldErrors) add(field, message string) FieldErrors {
	return append(fe, FieldError{Field: field, Message: message})
}

// OrNil returns the report as an error, or nil when empty.
func (fe FieldErrors) OrNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// prefix returns a copy of the report with every field path prefixed, used
// when composing section reports into a whole-document report.
func (fe FieldErrors) prefix(p string) FieldErrors {
	out := make(FieldErrors, len(fe))
	for i, e := range fe {
		out[i] = FieldError{Field: p + "." + e.Field, Message: e.Message}
	}
	return out
}
