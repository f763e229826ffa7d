package todoist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPriority reports a priority outside 1..4.
	ErrInvalidPriority = errors.New("priority must be between 1 and 4")

	// ErrMissingField reports a required wire field that was absent from a
	// service response.
	ErrMissingField = errors.New("required field missing")
)

// ValidationError wraps a mutator argument that is outside its domain. It
// is returned to the caller; nothing in this package aborts on bad input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("todoist: invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DecodeError wraps a service payload that does not satisfy the read
// schema: malformed JSON, or a required field missing or of the wrong
// type. Field is empty when the failure is not tied to a single field.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("todoist: decode task: %v", e.Err)
	}
	return fmt.Sprintf("todoist: decode task: field %q: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
