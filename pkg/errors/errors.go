// Package errors provides structured error types for cargo-dot.
//
// Every fatal condition the tool can hit is reported as an [*Error] carrying
// one of four codes:
//   - INPUT_UNAVAILABLE: the lock file cannot be read or decoded
//   - ROOT_UNRESOLVABLE: no root package can be determined
//   - SINK_WRITE_FAILURE: the output cannot be created or written
//   - CONFIGURATION_ERROR: malformed invocation options
//
// None of them are recovered from; the CLI maps them to an exit status with
// [ExitCode] and terminates.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeRootUnresolvable, "no root package in %s", path)
//	if errors.Is(err, errors.ErrCodeRootUnresolvable) {
//	    // ...
//	}
//
//	// Wrap an OS error, keeping a short reason in the message
//	err := errors.FromIO(errors.ErrCodeSinkWriteFailure, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes, one per failure category.
const (
	ErrCodeInputUnavailable   Code = "INPUT_UNAVAILABLE"
	ErrCodeRootUnresolvable   Code = "ROOT_UNRESOLVABLE"
	ErrCodeSinkWriteFailure   Code = "SINK_WRITE_FAILURE"
	ErrCodeConfigurationError Code = "CONFIGURATION_ERROR"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
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
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode returns the process exit status for err.
// A nil error is ExitOK, configuration errors are ExitUsage, anything else is
// ExitFailure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, ErrCodeConfigurationError):
		return ExitUsage
	default:
		return ExitFailure
	}
}
