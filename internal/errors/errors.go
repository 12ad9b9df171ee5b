package errors

import (
	"fmt"
	"os"
	"time"
)

// Error types for rootstem
type ErrorType string

const (
	// Input errors
	ErrorTypeFileNotFound ErrorType = "file_not_found"
	ErrorTypePermission   ErrorType = "permission"
	ErrorTypeInput        ErrorType = "input"

	// Configuration errors
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeAlgorithm ErrorType = "algorithm"
)

// InputError represents a failure reading words from a file or stream
type InputError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewInputError creates a new input error, classifying common os failures
func NewInputError(op, path string, err error) *InputError {
	errorType := ErrorTypeInput
	switch {
	case os.IsNotExist(err):
		errorType = ErrorTypeFileNotFound
	case os.IsPermission(err):
		errorType = ErrorTypePermission
	}

	return &InputError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *InputError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// AlgorithmError reports an algorithm name that could not be resolved
type AlgorithmError struct {
	Name       string
	Underlying error
	Timestamp  time.Time
}

// NewAlgorithmError creates a new algorithm error
func NewAlgorithmError(name string, err error) *AlgorithmError {
	return &AlgorithmError{
		Name:       name,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrorTypeAlgorithm, e.Name, e.Underlying)
}

// Unwrap returns the underlying error
func (e *AlgorithmError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
