package core

import "fmt"

// The error taxonomy mirrors what callers can act on: validation
// failures carry field-level detail, conflicts signal blocked deletes
// or ownership violations, not-found signals missing ids or series.
// None of these are retried automatically.

// ValidationError reports malformed input on a specific field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidErr builds a ValidationError from a sentinel error.
func InvalidErr(field string, err error) error {
	return &ValidationError{Field: field, Reason: err.Error()}
}

// ConflictError reports an operation blocked by existing references or
// by ownership rules (e.g. deleting an account that has transactions,
// mutating a shared bank account from outside its owner).
type ConflictError struct {
	Resource string
	Reason   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %s", e.Resource, e.Reason)
}

// Conflict builds a ConflictError.
func Conflict(resource, reason string) error {
	return &ConflictError{Resource: resource, Reason: reason}
}

// NotFoundError reports a missing id or installment series.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(resource string, id int64) error {
	return &NotFoundError{Resource: resource, ID: id}
}
