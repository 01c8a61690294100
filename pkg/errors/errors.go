// Package errors provides structured error types for lodviz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the HTTP API
//   - Machine-readable error codes mapped onto HTTP status codes
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (HTTP 400)
//   - *NOT_FOUND: Resource not found (HTTP 404)
//   - INTERNAL_ERROR, UNSUPPORTED: Unexpected failures (HTTP 500, 501)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidThreshold, "threshold must be at least 3, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidThreshold) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidTable, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidEncoding  Code = "INVALID_ENCODING"
	ErrCodeInvalidMark      Code = "INVALID_MARK"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidThreshold Code = "INVALID_THRESHOLD"
	ErrCodeInvalidRule      Code = "INVALID_RULE"
	ErrCodeInvalidSpec      Code = "INVALID_SPEC"
	ErrCodeInvalidTable     Code = "INVALID_TABLE"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeChartNotFound Code = "CHART_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// HTTPStatus maps the code onto an HTTP status: 400 for INVALID_*, 404 for
// NOT_FOUND codes, 501 for UNSUPPORTED and 500 otherwise.
func (c Code) HTTPStatus() int {
	switch {
	case strings.HasPrefix(string(c), "INVALID_"):
		return http.StatusBadRequest
	case strings.HasSuffix(string(c), "NOT_FOUND"):
		return http.StatusNotFound
	case c == ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

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

// CodeOrInternal is GetCode with ErrCodeInternal for plain errors.
func CodeOrInternal(err error) Code {
	if c := GetCode(err); c != "" {
		return c
	}
	return ErrCodeInternal
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
