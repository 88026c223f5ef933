package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Progress document errors
	ErrCodeSchemaValidation ErrorCode = "SCHEMA_VALIDATION"
	ErrCodeProgressNotFound ErrorCode = "PROGRESS_NOT_FOUND"
	ErrCodeProgressInvalid  ErrorCode = "PROGRESS_INVALID"

	// Work state errors
	ErrCodeWorkStateInvalid ErrorCode = "WORK_STATE_INVALID"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Git errors
	ErrCodeGitCommandFailed ErrorCode = "GIT_COMMAND_FAILED"

	// Hook errors
	ErrCodeHookInput   ErrorCode = "HOOK_INPUT_INVALID"
	ErrCodeHookPattern ErrorCode = "HOOK_PATTERN_INVALID"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// ProgressError represents a structured error with context
type ProgressError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ProgressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ProgressError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *ProgressError) WithDetail(key string, value interface{}) *ProgressError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *ProgressError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new ProgressError
func New(code ErrorCode, message string) *ProgressError {
	return &ProgressError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ProgressError
func Wrap(err error, code ErrorCode, message string) *ProgressError {
	return &ProgressError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific ProgressError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	progErr, ok := err.(*ProgressError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return progErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	progErr, ok := err.(*ProgressError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return progErr.Code
}
