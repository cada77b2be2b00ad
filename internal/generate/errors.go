package generate

import "fmt"

// GenerationError reports a failed generation call: the upstream completion
// capability errored or returned nothing usable. It is distinct from a
// validation error so callers can offer a retry instead of a form fix.
type GenerationError struct {
	Generator string
	Cause     error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s generation failed: %v", e.Generator, e.Cause)
	}
	return fmt.Sprintf("%s generation failed", e.Generator)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}
