package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidState      = errors.New("operation is not allowed in current state")
	ErrExternalService   = errors.New("external service call failed")
	ErrConcurrencyFailed = errors.New("concurrent modification detected")
)

// sanitize flattens multi-line values so formatted errors stay on one log line.
func sanitize(v any) string {
	s := fmt.Sprintf("%s", v)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ObjectNotFoundError indicates that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value fails a business or format rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a mandatory value is missing or empty.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateError indicates that an operation was attempted from a lifecycle
// state that forbids it. It always carries both the attempted operation and the
// state the object was in, so callers can see exactly what was rejected.
type InvalidStateError struct {
	Operation    string
	CurrentState string
	Cause        error
}

// NewInvalidStateError creates an InvalidStateError for the given operation and state.
func NewInvalidStateError(operation, currentState string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, CurrentState: currentState}
}

// NewInvalidStateErrorWithCause creates an InvalidStateError wrapping an underlying cause.
func NewInvalidStateErrorWithCause(operation, currentState string, cause error) *InvalidStateError {
	return &InvalidStateError{Operation: operation, CurrentState: currentState, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: cannot %s in status %s (cause: %s)",
			ErrInvalidState, e.Operation, e.CurrentState, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: cannot %s in status %s", ErrInvalidState, e.Operation, e.CurrentState)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// ExternalServiceError indicates that a call to an external collaborator failed
// or returned an unusable response.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError without an underlying cause.
func NewExternalServiceError(service string) *ExternalServiceError {
	return &ExternalServiceError{Service: service}
}

// NewExternalServiceErrorWithCause creates an ExternalServiceError wrapping an underlying cause.
func NewExternalServiceErrorWithCause(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}

// ConcurrencyError indicates that an optimistic version check failed because
// another caller modified the same object first. Safe to retry.
type ConcurrencyError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConcurrencyError creates a ConcurrencyError without an underlying cause.
func NewConcurrencyError(paramName string, id any) *ConcurrencyError {
	return &ConcurrencyError{ParamName: paramName, ID: id}
}

// NewConcurrencyErrorWithCause creates a ConcurrencyError wrapping an underlying cause.
func NewConcurrencyErrorWithCause(paramName string, id any, cause error) *ConcurrencyError {
	return &ConcurrencyError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConcurrencyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrConcurrencyFailed, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConcurrencyFailed, e.ID)
}

func (e *ConcurrencyError) Unwrap() error {
	return ErrConcurrencyFailed
}
