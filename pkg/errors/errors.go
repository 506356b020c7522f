package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Document tree errors
	ErrInvalidNode ErrorCode = "INVALID_NODE"
	ErrUnknownKind ErrorCode = "UNKNOWN_KIND"

	// Interchange errors
	ErrDecode ErrorCode = "DECODE"
	ErrEncode ErrorCode = "ENCODE"

	// Renderer selection errors
	ErrUnknownFormat ErrorCode = "UNKNOWN_FORMAT"
	ErrUnknownFlavor ErrorCode = "UNKNOWN_FLAVOR"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateParse   ErrorCode = "TEMPLATE_PARSE"
	ErrTemplateExecute ErrorCode = "TEMPLATE_EXECUTE"

	// Output errors
	ErrWrite ErrorCode = "WRITE"
)

// DocweaveError represents a structured error with code and details
type DocweaveError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DocweaveError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DocweaveError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DocweaveError) Is(target error) bool {
	var targetErr *DocweaveError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DocweaveError with the given code and message
func New(code ErrorCode, message string) *DocweaveError {
	return &DocweaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DocweaveError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DocweaveError {
	return &DocweaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DocweaveError
func Wrap(err error, code ErrorCode, message string) *DocweaveError {
	if err == nil {
		return nil
	}
	return &DocweaveError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DocweaveError {
	if err == nil {
		return nil
	}
	return &DocweaveError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DocweaveError) WithDetail(key string, value interface{}) *DocweaveError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dwErr *DocweaveError
	if errors.As(err, &dwErr) {
		return dwErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DocweaveError
func GetErrorCode(err error) ErrorCode {
	var dwErr *DocweaveError
	if errors.As(err, &dwErr) {
		return dwErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DocweaveError
func GetErrorDetails(err error) map[string]interface{} {
	var dwErr *DocweaveError
	if errors.As(err, &dwErr) {
		return dwErr.Details
	}
	return nil
}
