// Package errors provides unified error handling across the gomeasure system.
//
// Drivers, adapters and the filename widget all surface failures as AppErrors
// so that host applications can categorize them (retry a flaky serial read,
// log a protocol error, refuse an out-of-range setting) without string
// matching on error text.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeOutOfRange    ErrorCode = "OUT_OF_RANGE"
	ErrCodeInvalidOption ErrorCode = "INVALID_OPTION"

	// Instrument protocol errors
	ErrCodeProtocol    ErrorCode = "PROTOCOL_ERROR"
	ErrCodeDecode      ErrorCode = "DECODE_ERROR"
	ErrCodeNoReply     ErrorCode = "NO_REPLY"
	ErrCodeUnknownUnit ErrorCode = "UNKNOWN_UNIT"

	// Transport errors
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	ErrCodeConnectionLost   ErrorCode = "CONNECTION_LOST"
	ErrCodeTimeout          ErrorCode = "TIMEOUT"

	// Configuration errors
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"

	// Registry errors
	ErrCodeDriverNotFound ErrorCode = "DRIVER_NOT_FOUND"

	// Internal errors
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryProtocol   ErrorCategory = "protocol"
	CategoryTransport  ErrorCategory = "transport"
	CategoryConfig     ErrorCategory = "config"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// IsRetryable returns whether the error is retryable
func (e *AppError) IsRetryable() bool {
	return e.Retryable
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
		Retryable: isRetryable(code),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeOutOfRange, ErrCodeInvalidOption:
		return CategoryValidation, SeverityWarning

	case ErrCodeProtocol, ErrCodeDecode, ErrCodeUnknownUnit:
		return CategoryProtocol, SeverityError
	case ErrCodeNoReply:
		return CategoryProtocol, SeverityWarning

	case ErrCodeConnectionFailed, ErrCodeConnectionLost, ErrCodeTimeout:
		return CategoryTransport, SeverityError

	case ErrCodeConfigInvalid, ErrCodeConfigNotFound:
		return CategoryConfig, SeverityError

	case ErrCodeDriverNotFound:
		return CategorySystem, SeverityInfo

	default:
		return CategorySystem, SeverityError
	}
}

// isRetryable determines if an error is retryable based on its code
func isRetryable(code ErrorCode) bool {
	switch code {
	case ErrCodeNoReply, ErrCodeTimeout, ErrCodeConnectionFailed, ErrCodeConnectionLost:
		return true
	default:
		return false
	}
}

// IsAppError checks if an error is or wraps an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// GetAppError extracts an AppError from an error chain, or converts the
// error to one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// Common error constructors for frequently used errors
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func OutOfRangeError(message string) *AppError {
	return NewAppError(ErrCodeOutOfRange, message)
}

func ProtocolError(code string, message string) *AppError {
	return NewAppError(ErrCodeProtocol, message).WithContext("wire_code", code)
}

func DecodeError(message string) *AppError {
	return NewAppError(ErrCodeDecode, message)
}

func NoReplyError() *AppError {
	return NewAppError(ErrCodeNoReply, "no reply from instrument")
}

func ConnectionError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeConnectionFailed, fmt.Sprintf("Connection operation failed: %s", operation))
}

func ConfigError(message string, err error) *AppError {
	return Wrap(err, ErrCodeConfigInvalid, message)
}

func DriverNotFoundError(name string) *AppError {
	return NewAppError(ErrCodeDriverNotFound, fmt.Sprintf("driver '%s' not found", name))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}
