// Package errors provides structured error types for laserfinity.
//
// Every failure in the tool is terminal for the invocation that hit it, so
// the codes exist to let the CLI and the HTTP server pick the right exit
// status or response code, not to drive retries.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures (dimension strings, config files, formats)
//   - MISSING_ARGUMENT: A required flag or query parameter was not supplied
//   - IO_ERROR: Output could not be written
//   - INTERNAL_ERROR: Unexpected failures (external converters, encoders)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDimension, "no numeric value in %q", text)
//	if errors.Is(err, errors.ErrCodeInvalidDimension) {
//	    // reject the argument
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
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
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeMissingArgument  Code = "MISSING_ARGUMENT"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeIO       Code = "IO_ERROR"

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

// As is [errors.As], re-exported so callers importing this package under the
// name errors keep access to it.
func As(err error, target any) bool {
	return errors.As(err, target)
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
	return err.Error()
}

// IsInputError reports whether err was caused by bad user input rather than
// by the environment. The HTTP server maps these to 400 responses.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidDimension, ErrCodeInvalidConfig, ErrCodeInvalidFormat, ErrCodeMissingArgument:
		return true
	}
	return false
}

// ParseError reports a malformed dimension or quantity string.
type ParseError struct {
	Input  string // Text that failed to parse
	Reason string // What was wrong with it
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// Code returns the error code for this error type.
func (e *ParseError) Code() Code {
	return ErrCodeInvalidDimension
}

// NewParseError wraps a ParseError in a coded *Error so callers can match
// either on the code or with errors.As on *ParseError.
func NewParseError(input, reason string) *Error {
	pe := &ParseError{Input: input, Reason: reason}
	return Wrap(ErrCodeInvalidDimension, pe, "invalid dimension %q", input)
}

// MissingArgumentError reports a required argument that was not supplied.
type MissingArgumentError struct {
	Names []string // Flag or parameter names that were missing
}

// Error implements the error interface.
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument(s): %v", e.Names)
}

// Code returns the error code for this error type.
func (e *MissingArgumentError) Code() Code {
	return ErrCodeMissingArgument
}

// NewMissingArgument wraps a MissingArgumentError in a coded *Error.
func NewMissingArgument(message string, names ...string) *Error {
	return Wrap(ErrCodeMissingArgument, &MissingArgumentError{Names: names}, "%s", message)
}
