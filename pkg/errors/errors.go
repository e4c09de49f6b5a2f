// Package errors provides structured error types for deprank.
//
// Domain packages ([graph], [transform], [nodelink], [render]) return plain
// sentinel or typed errors. At the application boundary the CLI attaches a
// machine-readable [Code] so that every failure surfaces with a consistent,
// human-readable message.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - DUPLICATE_*, UNKNOWN_*: Registry construction failures
//   - CYCLE_*, NODE_*: Graph analysis failures
//   - RENDERING_*: External renderer failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPath, "root %s is not a directory", root)
//	if errors.Is(err, errors.ErrCodeInvalidPath) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "parse %s", path)
//
// [graph]: github.com/matzehuels/deprank/pkg/graph
// [transform]: github.com/matzehuels/deprank/pkg/graph/transform
// [nodelink]: github.com/matzehuels/deprank/pkg/render/nodelink
// [render]: github.com/matzehuels/deprank/pkg/render
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Registry errors
	ErrCodeDuplicateProject Code = "DUPLICATE_PROJECT"
	ErrCodeUnknownProject   Code = "UNKNOWN_PROJECT"

	// Graph analysis errors
	ErrCodeCycleOrMissingReference Code = "CYCLE_OR_MISSING_REFERENCE"
	ErrCodeNodeNameCollision       Code = "NODE_NAME_COLLISION"

	// Output errors
	ErrCodeRendering Code = "RENDERING_FAILED"

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

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Classifier maps a domain error to a Code. It returns false when the error
// is not one it recognizes.
type Classifier func(err error) (Code, bool)

// Classify attaches a code to err using the first classifier that
// recognizes it. Errors that already carry a code are returned unchanged;
// unrecognized errors are wrapped as [ErrCodeInternal].
func Classify(err error, classifiers ...Classifier) error {
	if err == nil {
		return nil
	}
	if GetCode(err) != "" {
		return err
	}
	for _, c := range classifiers {
		if code, ok := c(err); ok {
			return &Error{Code: code, Message: describe(code), Cause: err}
		}
	}
	return &Error{Code: ErrCodeInternal, Message: describe(ErrCodeInternal), Cause: err}
}

var descriptions = map[Code]string{
	ErrCodeDuplicateProject:        "two manifests resolve to the same project name",
	ErrCodeUnknownProject:          "project not found",
	ErrCodeCycleOrMissingReference: "cannot rank projects",
	ErrCodeNodeNameCollision:       "cannot build DOT graph",
	ErrCodeRendering:               "rendering failed",
	ErrCodeInternal:                "analysis failed",
}

func describe(code Code) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return string(code)
}
