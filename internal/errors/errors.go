// Package errors provides structured, user-facing errors for the cadupdate CLI.
// Each error carries a category, a message, optional usage text, and
// remediation steps that are rendered by FormatError.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies a CLI error for display purposes
type ErrorCategory int

const (
	// Argument indicates invalid command-line input
	Argument ErrorCategory = iota
	// Configuration indicates missing or invalid configuration
	Configuration
	// Network indicates the feed or download host could not be reached
	Network
	// Runtime indicates a failure while performing an operation
	Runtime
)

// String returns the display label for the category
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Network:
		return "Network Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error with enough context to tell the user how to fix it
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates an argument error with optional remediation steps
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Remediation: remediation,
	}
}

// NewArgumentErrorWithUsage creates an argument error that includes usage text
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     message,
		Usage:       usage,
		Remediation: remediation,
	}
}

// NewConfigError creates a configuration error
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Configuration,
		Message:     message,
		Remediation: remediation,
	}
}

// NewNetworkError creates a network error
func NewNetworkError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Network,
		Message:     message,
		Remediation: remediation,
	}
}

// NewRuntimeError creates a runtime error
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{
		Category:    Runtime,
		Message:     message,
		Remediation: remediation,
	}
}

// Wrap converts err into a CLIError of the given category.
// Returns nil if err is nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// WrapWithMessage converts err into a CLIError whose message is prefixed by msg.
// Returns nil if err is nil.
func WrapWithMessage(err error, category ErrorCategory, msg string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %s", msg, err.Error()),
		Remediation: remediation,
		Err:         err,
	}
}

// IsCLIError reports whether err (or anything it wraps) is a CLIError
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
