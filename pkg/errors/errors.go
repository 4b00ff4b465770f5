// Package errors provides structured error types for boardcreator.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the terminal editor and the HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Resource not found
//   - SELECTION_*, FILE_*: Project import pipeline failures
//   - STORAGE_*, INTERNAL_*: Backend and unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidProjectFile, "missing field %q", "fileName")
//	if errors.Is(err, errors.ErrCodeInvalidProjectFile) {
//	    // Notify the user, nothing was changed
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileRead, origErr, "read %s", name)
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
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidBoard       Code = "INVALID_BOARD"
	ErrCodeInvalidFileName    Code = "INVALID_FILE_NAME"
	ErrCodeInvalidProjectFile Code = "INVALID_PROJECT_FILE"

	// Project import pipeline errors
	ErrCodeSelectionCancelled Code = "SELECTION_CANCELLED"
	ErrCodeFileRead           Code = "FILE_READ_FAILURE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Programming errors
	ErrCodeUnhandledTagMode Code = "UNHANDLED_TAG_MODE"

	// Backend and internal errors
	ErrCodeStorage  Code = "STORAGE_ERROR"
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

// Recoverable reports whether err is a user-facing failure that leaves the
// project untouched. Cancelled selections, unreadable files and invalid
// project files are all recoverable; everything else is not.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeSelectionCancelled, ErrCodeFileRead, ErrCodeInvalidProjectFile,
		ErrCodeInvalidInput, ErrCodeInvalidBoard, ErrCodeInvalidFileName:
		return true
	}
	return false
}
