// Package errors provides structured error types for coachmark.
//
// The tour engine itself never fails: transitions on an empty tour are no-ops
// and placement degrades to a clamp. Errors only exist at the edges where the
// engine meets the outside world: tour scripts, checkpoint stores, the HTTP
// driver and the CLI. This package gives those edges a shared vocabulary:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *NOT_FOUND: Resource not found
//   - STORE_ERROR: Checkpoint backend failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAlignment, "unknown alignment %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidAlignment) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "save checkpoint %s", id)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidScript    Code = "INVALID_SCRIPT"
	ErrCodeInvalidAlignment Code = "INVALID_ALIGNMENT"
	ErrCodeInvalidEffect    Code = "INVALID_EFFECT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidTourID    Code = "INVALID_TOUR_ID"

	// Resource not found errors
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodeFileNotFound       Code = "FILE_NOT_FOUND"
	ErrCodeCheckpointNotFound Code = "CHECKPOINT_NOT_FOUND"

	// Storage errors
	ErrCodeStore Code = "STORE_ERROR"

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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Error()
	}
	return err.Error()
}

// FieldError reports an invalid field in a structured document such as a
// tour script. Suggestion, when set, names the closest valid value.
type FieldError struct {
	Code       Code
	Field      string // dotted path, e.g. "target[2].alignment"
	Value      string
	Suggestion string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

// Is makes errors.Is(err, &FieldError{Code: c}) match on code alone.
func (e *FieldError) Is(target error) bool {
	t, ok := target.(*FieldError)
	return ok && t.Code == e.Code && t.Field == "" && t.Value == ""
}

// AsError converts the field error into a coded *Error so that [Is] and
// [GetCode] work on it.
func (e *FieldError) AsError() *Error {
	return &Error{Code: e.Code, Message: e.Error(), Cause: e}
}
