// Package errors provides coded errors for the CLI and HTTP surfaces.
//
// The generator packages return plain sentinel errors. Surfaces call
// [Classify] to attach a machine-readable [Code], which drives the process
// exit message and the HTTP status.
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // reject the request
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/matzehuels/bracketmaker/pkg/bracket"
	"github.com/matzehuels/bracketmaker/pkg/ladder"
	"github.com/matzehuels/bracketmaker/pkg/roster"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidCapacity Code = "INVALID_CAPACITY"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidRoster   Code = "INVALID_ROSTER"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidBracket  Code = "INVALID_BRACKET"
	ErrCodeUnlinkedSlot    Code = "UNLINKED_SLOT"
	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeInternal        Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values
// and the full error string otherwise. Causes of classified sentinel errors
// are included since they carry the offending value.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil && e.Message == "" {
			return e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Classify returns err with a code attached. Errors that already carry a
// code are returned unchanged; known sentinels from the generator packages
// are mapped to their code; everything else is INTERNAL_ERROR. Classify(nil)
// is nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	switch {
	case errors.Is(err, bracket.ErrInvalidCapacity):
		return &Error{Code: ErrCodeInvalidCapacity, Cause: err}
	case errors.Is(err, bracket.ErrUnlinkedSlot):
		return &Error{Code: ErrCodeUnlinkedSlot, Cause: err}
	case errors.Is(err, roster.ErrInvalidColumns):
		return &Error{Code: ErrCodeInvalidRoster, Cause: err}
	case errors.Is(err, ladder.ErrDanglingProgression):
		return &Error{Code: ErrCodeInvalidBracket, Cause: err}
	}
	return &Error{Code: ErrCodeInternal, Cause: err}
}

// HTTPStatus maps a code to the status the API answers with.
func HTTPStatus(code Code) int {
	switch code {
	case ErrCodeInvalidCapacity, ErrCodeInvalidFormat, ErrCodeInvalidRoster, ErrCodeInvalidConfig, ErrCodeInvalidBracket:
		return http.StatusBadRequest
	case ErrCodeUnlinkedSlot:
		return http.StatusUnprocessableEntity
	case ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
