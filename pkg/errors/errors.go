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
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Manifest errors
	ErrManifestMissing   ErrorCode = "MANIFEST_MISSING"
	ErrManifestMalformed ErrorCode = "MANIFEST_MALFORMED"

	// Packaging errors
	ErrCopyFailed    ErrorCode = "COPY_FAILED"
	ErrArchiveCreate ErrorCode = "ARCHIVE_CREATE_FAILED"
	ErrMoveFailed    ErrorCode = "MOVE_FAILED"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCreate ErrorCode = "FILE_CREATE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// ModpackError represents a structured error with code and details
type ModpackError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ModpackError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ModpackError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ModpackError) Is(target error) bool {
	var targetErr *ModpackError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ModpackError with the given code and message
func New(code ErrorCode, message string) *ModpackError {
	return &ModpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ModpackError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ModpackError {
	return &ModpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ModpackError
func Wrap(err error, code ErrorCode, message string) *ModpackError {
	if err == nil {
		return nil
	}
	return &ModpackError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ModpackError {
	if err == nil {
		return nil
	}
	return &ModpackError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ModpackError) WithDetail(key string, value interface{}) *ModpackError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var packErr *ModpackError
	if errors.As(err, &packErr) {
		return packErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ModpackError
func GetErrorCode(err error) ErrorCode {
	var packErr *ModpackError
	if errors.As(err, &packErr) {
		return packErr.Code
	}
	return ErrUnknown
}
