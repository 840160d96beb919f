// Package errors provides structured error types for primetree.
//
// Every failure the engine can report carries a machine-readable [Code] so
// hosts (CLI, HTTP server, terminal explorer) can decide how to surface it
// without string matching.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures (range, policy, format)
//   - RANGE_TOO_LARGE: Requested tree exceeds the configured node cap
//   - INTERNAL_ERROR: Broken invariant inside the engine
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRange, "start %d exceeds end %d", start, end)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // keep the last valid graph on screen
//	}
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
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Capacity errors
	ErrCodeRangeTooLarge Code = "RANGE_TOO_LARGE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// IsUserError reports whether err was caused by bad input rather than a
// fault inside the engine. Hosts use it to choose between a validation
// message and an internal failure report.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidRange, ErrCodeInvalidPolicy, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeRangeTooLarge:
		return true
	}
	return false
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
