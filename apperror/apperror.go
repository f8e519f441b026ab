// Package apperror defines the typed failures returned by every core
// operation. The HTTP layer maps a Reason to a status code; nothing below
// the HTTP layer knows about status codes.
package apperror

import (
	"errors"
	"fmt"
)

// Reason classifies a failure
type Reason string

const (
	ReasonNotFound          Reason = "NotFound"
	ReasonUnauthenticated   Reason = "Unauthenticated"
	ReasonForbidden         Reason = "Forbidden"
	ReasonInvalidInput      Reason = "InvalidInput"
	ReasonConflict          Reason = "Conflict"
	ReasonInvalidTransition Reason = "InvalidTransition"
	ReasonInternal          Reason = "Internal"
)

// Error is a typed failure with enough context to build a client message
type Error struct {
	Reason  Reason
	Message string
	Field   string
	From    string
	To      string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithField names the payload field the failure refers to
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

func NotFound(message string) *Error {
	return &Error{Reason: ReasonNotFound, Message: message}
}

func Unauthenticated(message string) *Error {
	return &Error{Reason: ReasonUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Reason: ReasonForbidden, Message: message}
}

func InvalidInput(message string) *Error {
	return &Error{Reason: ReasonInvalidInput, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Reason: ReasonConflict, Message: message}
}

// InvalidTransition reports a rejected status move from -> to
func InvalidTransition(from, to, message string) *Error {
	return &Error{Reason: ReasonInvalidTransition, Message: message, From: from, To: to}
}

// Internal wraps an unexpected storage or infrastructure fault. The cause is
// kept for logging and never rendered to clients.
func Internal(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return &Error{Reason: ReasonInternal, Message: "internal server error", cause: err}
}

// As returns the typed failure carried by err, wrapping untyped errors as
// Internal.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	return Internal(err)
}

// ReasonOf returns the reason of err, or "" for nil
func ReasonOf(err error) Reason {
	if e := As(err); e != nil {
		return e.Reason
	}
	return ""
}

// Is reports whether err carries the given reason
func Is(err error, reason Reason) bool {
	return ReasonOf(err) == reason
}
