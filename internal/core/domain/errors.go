package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels shared by the store and the services. Concrete error types below
// unwrap to these so callers can branch with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("already exists")
	ErrInvalidID       = errors.New("ID is invalid")
	ErrInvalidPassword = errors.New("Password is invalid")
)

// FieldError is a single entry of the "errors" list in the response envelope.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
	Value any    `json:"value,omitempty"`
}

// ValidationError carries an ordered, non-empty list of field failures.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Msg)
	}
	return strings.Join(msgs, "; ")
}

// Invalid builds a ValidationError holding a single field failure.
func Invalid(param, msg string, value any) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Msg: msg, Param: param, Value: value}}}
}

// NotFoundError is a missing entity or an empty result set.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound formats a NotFoundError.
func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation without naming the colliding field.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func (e *ConflictError) Is(target error) bool { return target == ErrDuplicate }

// InternalError hides Cause from clients; only Msg is rendered.
type InternalError struct {
	Msg   string
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Cause.Error()
}

func (e *InternalError) Unwrap() error { return e.Cause }

// Internal wraps a store failure with the message shown to the client.
func Internal(msg string, cause error) error {
	return &InternalError{Msg: msg, Cause: cause}
}
