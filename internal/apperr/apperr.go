package apperr

import "fmt"

// ValidationError reports malformed or missing form input. Handlers recover
// locally by re-rendering the form with the field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			return fmt.Sprintf("validation failed: %s: %s", field, msg)
		}
	}
	return fmt.Sprintf("validation failed on %d fields", len(e.Fields))
}

// Validation builds a single-field ValidationError.
func Validation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate username
// or email on registration.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already taken", e.Field, e.Value)
}

func Conflict(field, value string) *ConflictError {
	return &ConflictError{Field: field, Value: value}
}

// GuardError reports an unmet business precondition, e.g. creating a
// project while no project lead exists.
type GuardError struct {
	Msg string
}

func (e *GuardError) Error() string { return e.Msg }

func Guard(msg string) *GuardError { return &GuardError{Msg: msg} }

// AuthorizationError reports a failed role or ownership check. The message
// is intentionally generic so unauthorized users learn nothing about the
// resource beyond the denial itself.
type AuthorizationError struct {
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not permitted to %s", e.Action)
}

func Forbidden(action string) *AuthorizationError {
	return &AuthorizationError{Action: action}
}

// NotFoundError reports a resource id with no backing row.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// PayloadTooLargeError reports an upload exceeding the configured maximum.
type PayloadTooLargeError struct {
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload exceeds the %d byte limit", e.Limit)
}

func PayloadTooLarge(limit int64) *PayloadTooLargeError {
	return &PayloadTooLargeError{Limit: limit}
}
