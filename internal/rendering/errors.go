package rendering

import (
	"fmt"

	"github.com/Caoophuongg/quickcv/internal/types"
)

// TemplateError represents an error parsing or executing an HTML template.
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// UnknownTemplateError indicates a templateType with no catalog entry. This
// is a data-integrity failure, never silently defaulted.
type UnknownTemplateError struct {
	TemplateType types.TemplateType
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template type: %q", e.TemplateType)
}

// ExportError represents a failure producing the printable PDF.
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
