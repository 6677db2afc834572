package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeConfig            ErrorType = "CONFIG"
	ErrTypeColumnNotFound    ErrorType = "COLUMN_NOT_FOUND"
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeRead              ErrorType = "READ"
	ErrTypeWrite             ErrorType = "WRITE"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeUnknown           ErrorType = "UNKNOWN"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// ColumnNotFoundError is returned when no timestamp column can be resolved
// for a profile. It is raised before any row is parsed.
type ColumnNotFoundError struct {
	Profile   string
	Wanted    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	wanted := e.Wanted
	if wanted == "" {
		wanted = "timestamp"
	}
	return fmt.Sprintf("[%s] %s: no %s column found; available columns: [%s]",
		ErrTypeColumnNotFound, e.Profile, wanted, strings.Join(e.Available, ", "))
}

// NewColumnNotFoundError creates a column resolution error. The available
// column list is copied.
func NewColumnNotFoundError(profile, wanted string, available []string) *ColumnNotFoundError {
	return &ColumnNotFoundError{
		Profile:   profile,
		Wanted:    wanted,
		Available: append([]string(nil), available...),
	}
}

// Helper functions for common error types

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewUnsupportedFormatError creates an error for a file extension that
// cannot be read or written.
func NewUnsupportedFormatError(ext string) *AppError {
	return NewAppError(ErrTypeUnsupportedFormat, fmt.Sprintf("unsupported file format %q", ext), nil).
		WithContext("extension", ext)
}

// NewReadError creates an input error
func NewReadError(path string, cause error) *AppError {
	return NewAppError(ErrTypeRead, fmt.Sprintf("failed to read %s", path), cause).
		WithContext("path", path)
}

// NewWriteError creates an output error
func NewWriteError(path string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, fmt.Sprintf("failed to write %s", path), cause).
		WithContext("path", path)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// TypeOf reports the kind of the first typed error in err's chain.
func TypeOf(err error) ErrorType {
	if err == nil {
		return ""
	}
	var cnf *ColumnNotFoundError
	var app *AppError
	switch {
	case errors.As(err, &cnf):
		return ErrTypeColumnNotFound
	case errors.As(err, &app):
		return app.Type
	default:
		return ErrTypeUnknown
	}
}

// IsType reports whether err carries the given kind.
func IsType(err error, t ErrorType) bool {
	return err != nil && TypeOf(err) == t
}
