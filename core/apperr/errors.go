// Package apperr defines the error taxonomy shared by command and
// callback handlers. Every error carries a stable code used for log
// summaries; handlers translate errors to user-visible replies at the
// boundary and nothing propagates past them.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for boundary handling.
type Kind string

const (
	// KindValidation marks bad user input; the reply is corrective.
	KindValidation Kind = "VALIDATION"
	// KindNotFound marks a missing record or an expired session.
	KindNotFound Kind = "NOT_FOUND"
	// KindAuthorization marks a refused action.
	KindAuthorization Kind = "AUTHORIZATION"
	// KindTransient marks a network or database failure worth apologising for.
	KindTransient Kind = "TRANSIENT"
)

// Error is a classified error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Code reports the stable error code for log summaries.
func (e *Error) Code() string { return string(e.Kind) }

// Validation constructs a validation error with a user-facing message.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NotFound constructs a not-found error.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Authorization constructs a refusal error.
func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// Transient wraps an I/O failure keeping a best-effort diagnostic.
func Transient(msg string, err error) *Error {
	return &Error{Kind: KindTransient, Message: msg, Err: err}
}

// KindOf returns the kind of err if it is a classified error.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// Is reports whether err is classified with the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
