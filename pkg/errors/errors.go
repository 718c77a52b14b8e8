// Package errors provides structured error types for jugglesearch.
//
// This package defines error codes and types that enable:
//   - A clear split between user errors and internal errors
//   - Machine-readable error codes for the CLI and the HTTP API
//   - User-friendly messages naming the offending field
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: malformed or out-of-range input (user errors)
//   - MISMATCHED_*: inputs that are individually valid but incompatible
//   - INTERNAL_*: invariant violations that indicate a logic defect
//
// A search that stops on its count or time limit is not an error; see
// siteswap.Outcome.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPeriod, "period %d is not a multiple of %d", p, rp)
//	if errors.IsUserError(err) {
//	    // report errors.UserMessage(err)
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidRegex, origErr, "exclude term %q", term)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidPeriod  Code = "INVALID_PERIOD"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"
	ErrCodeInvalidRegex   Code = "INVALID_REGEX"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"

	// Incompatible inputs
	ErrCodeMismatchedPatterns Code = "MISMATCHED_PATTERNS"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
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

// Internal creates an INTERNAL_ERROR for an invariant that should be unreachable.
func Internal(format string, args ...any) *Error {
	return New(ErrCodeInternal, format, args...)
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

// IsUserError reports whether err was caused by bad input rather than a defect.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidPeriod, ErrCodeInvalidPattern,
		ErrCodeInvalidRegex, ErrCodeInvalidFormat, ErrCodeInvalidConfig,
		ErrCodeMismatchedPatterns:
		return true
	}
	return false
}

// IsInternal reports whether err signals a violated invariant.
func IsInternal(err error) bool {
	return Is(err, ErrCodeInternal)
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
