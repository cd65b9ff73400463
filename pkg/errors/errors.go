// Package errors defines the error codes every plate failure is reported with.
//
// Each failure carries a stable code plus structured details (path, field,
// index, ...) so callers and tests can branch on the kind of failure instead of
// parsing messages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Descriptor errors. All of them share the DESCRIPTOR_ prefix.
	ErrDescriptorSyntax  ErrorCode = "DESCRIPTOR_SYNTAX"
	ErrDescriptorRoot    ErrorCode = "DESCRIPTOR_ROOT"
	ErrDescriptorReplace ErrorCode = "DESCRIPTOR_REPLACE"
	ErrDescriptorEntry   ErrorCode = "DESCRIPTOR_ENTRY"
	ErrDescriptorField   ErrorCode = "DESCRIPTOR_FIELD"

	// Template and destination errors
	ErrTemplateResolution ErrorCode = "TEMPLATE_RESOLUTION"
	ErrDestination        ErrorCode = "DESTINATION"

	// Option errors
	ErrOptionParse      ErrorCode = "OPTION_PARSE"
	ErrMissingArgument  ErrorCode = "MISSING_ARGUMENT"
	ErrHiddenSuggestion ErrorCode = "HIDDEN_SUGGESTION_UNRESOLVED"
	ErrAnswersFile      ErrorCode = "ANSWERS_FILE"

	// Environment errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"
	ErrFileAccess     ErrorCode = "FILE_ACCESS"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
)

const descriptorPrefix = "DESCRIPTOR_"

// PlateError represents a structured error with code and details
type PlateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PlateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PlateError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PlateError) Is(target error) bool {
	var targetErr *PlateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PlateError with the given code and message
func New(code ErrorCode, message string) *PlateError {
	return &PlateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PlateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PlateError {
	return &PlateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PlateError
func Wrap(err error, code ErrorCode, message string) *PlateError {
	if err == nil {
		return nil
	}
	return &PlateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PlateError {
	if err == nil {
		return nil
	}
	return &PlateError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PlateError) WithDetail(key string, value interface{}) *PlateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var plateErr *PlateError
	if errors.As(err, &plateErr) {
		return plateErr.Code == code
	}
	return false
}

// IsDescriptorError reports whether err is any of the DESCRIPTOR_* errors.
func IsDescriptorError(err error) bool {
	return strings.HasPrefix(string(GetErrorCode(err)), descriptorPrefix)
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PlateError
func GetErrorCode(err error) ErrorCode {
	var plateErr *PlateError
	if errors.As(err, &plateErr) {
		return plateErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PlateError
func GetErrorDetails(err error) map[string]interface{} {
	var plateErr *PlateError
	if errors.As(err, &plateErr) {
		return plateErr.Details
	}
	return nil
}
