package Workflow

import "fmt"

// AuthorizationError means the caller's role or ownership does not permit the
// operation. Surfaced as 403.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// ValidationError carries field-level detail. Surfaced as 400.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// InvalidTransitionError means the entity is not in a state that permits the
// requested transition. Carries the current state so the caller can refresh.
type InvalidTransitionError struct {
	Entity    string
	Requested string
	Current   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s cannot %s while %s", e.Entity, e.Requested, e.Current)
}

// ConflictError means a duplicate submission (e.g. second check-in for the
// same date). Surfaced as 409.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// NotFoundError wraps a missing entity id. Surfaced as 404.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}
