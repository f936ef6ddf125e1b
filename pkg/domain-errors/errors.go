// Package domainerrors provides coded errors for the advisor core. Services
// return these so callers can branch on the failure class without string
// matching. Infrastructure facts (missing file, absent record) use
// pkg/platform/sentinel; stores return sentinels and services translate.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain failure.
type Code string

const (
	// CodeInvalidInput marks a validation failure on intake data. The message
	// names the first failing field; submission is aborted, nothing partial
	// is sent downstream.
	CodeInvalidInput Code = "invalid_input"

	// CodeNotFound marks a lookup for a case that does not exist.
	CodeNotFound Code = "not_found"

	// CodeCapacityExceeded marks an attempt to grow a bounded collection past
	// its limit, e.g. a fourth comparison selection.
	CodeCapacityExceeded Code = "capacity_exceeded"

	// CodeServiceUnavailable marks a failed call to the recommendation
	// service: network failure or a non-success response.
	CodeServiceUnavailable Code = "service_unavailable"

	// CodeInternal marks unexpected failures that have no recovery path at
	// the call site.
	CodeInternal Code = "internal"
)

// Error carries a code, a user-presentable message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New builds a coded error with a fixed message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a coded error around a cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// UserMessage returns the presentable message for a coded error, or a generic
// fallback when err is not coded. Presentation layers show this verbatim.
func UserMessage(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "Something went wrong. Please try again."
}
