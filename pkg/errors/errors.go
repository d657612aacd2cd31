// Package errors provides structured error types for jsonview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and WASM entry point
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input and configuration validation failures
//   - STRUCTURAL_RENDER / MISSING_TARGET: render contract violations
//   - DESTROYED / NOT_RENDERED: controller misuse
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unknown input format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Render contract errors
	ErrCodeStructuralRender Code = "STRUCTURAL_RENDER"
	ErrCodeMissingTarget    Code = "MISSING_TARGET"

	// Controller lifecycle errors
	ErrCodeDestroyed   Code = "DESTROYED"
	ErrCodeNotRendered Code = "NOT_RENDERED"

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
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error chain holds neither an *Error nor a
// [StructuralRenderError].
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var sre *StructuralRenderError
	if errors.As(err, &sre) {
		return ErrCodeStructuralRender
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

// StructuralRenderError reports that a node's markup did not yield an
// element the renderer needs, such as the caret of a branch line.
type StructuralRenderError struct {
	Path     []string // Key path of the node from the root
	Selector string   // Selector that found nothing
	Cause    error    // Markup or query failure (optional)
}

// Error implements the error interface.
func (e *StructuralRenderError) Error() string {
	where := "/" + strings.Join(e.Path, "/")
	if e.Cause != nil {
		return fmt.Sprintf("%s: node %s: %q: %v", ErrCodeStructuralRender, where, e.Selector, e.Cause)
	}
	return fmt.Sprintf("%s: node %s: markup has no %q element", ErrCodeStructuralRender, where, e.Selector)
}

// Unwrap returns the underlying cause.
func (e *StructuralRenderError) Unwrap() error {
	return e.Cause
}

// Code returns the error code for this error type.
func (e *StructuralRenderError) Code() Code {
	return ErrCodeStructuralRender
}
