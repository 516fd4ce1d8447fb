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

	// Build environment errors
	ErrNotBuildEnv ErrorCode = "NOT_BUILD_ENV"
	ErrEnvMissing  ErrorCode = "ENV_MISSING"

	// Project manifest errors
	ErrProjectNotFound ErrorCode = "PROJECT_NOT_FOUND"
	ErrProjectParse    ErrorCode = "PROJECT_PARSE"
	ErrProjectInvalid  ErrorCode = "PROJECT_INVALID"
	ErrProjectVersion  ErrorCode = "PROJECT_VERSION"
	ErrProjectExists   ErrorCode = "PROJECT_EXISTS"

	// Build step errors
	ErrBuildCommand ErrorCode = "BUILD_COMMAND"
	ErrClobber      ErrorCode = "CLOBBER"

	// Finder errors
	ErrRootNotFound   ErrorCode = "ROOT_NOT_FOUND"
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"
	ErrGlob           ErrorCode = "GLOB"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrFileChmod     ErrorCode = "FILE_CHMOD"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// DuncError represents a structured error with code and details
type DuncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DuncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface. Filesystem errors stay
// reachable through it, so errors.Is(err, fs.ErrNotExist) keeps working
// on anything the installer returns.
func (e *DuncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DuncError) Is(target error) bool {
	var targetErr *DuncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DuncError with the given code and message
func New(code ErrorCode, message string) *DuncError {
	return &DuncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DuncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DuncError {
	return &DuncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DuncError
func Wrap(err error, code ErrorCode, message string) *DuncError {
	if err == nil {
		return nil
	}
	return &DuncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DuncError {
	if err == nil {
		return nil
	}
	return &DuncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DuncError) WithDetail(key string, value interface{}) *DuncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var duncErr *DuncError
	if errors.As(err, &duncErr) {
		return duncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DuncError
func GetErrorCode(err error) ErrorCode {
	var duncErr *DuncError
	if errors.As(err, &duncErr) {
		return duncErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DuncError
func GetErrorDetails(err error) map[string]interface{} {
	var duncErr *DuncError
	if errors.As(err, &duncErr) {
		return duncErr.Details
	}
	return nil
}
