// Package errors turns failures from the changelog and config packages into
// categorized CLI errors that carry remediation hints.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory decides the exit code and the label printed with an error.
type ErrorCategory int

const (
	// Argument covers bad flags, positional arguments and versions.
	Argument ErrorCategory = iota
	// Configuration covers unreadable or invalid config files and variables.
	Configuration
	// Prerequisite covers a changelog tree that is missing or not ready.
	Prerequisite
	// Runtime covers everything else.
	Runtime
)

var categoryNames = map[ErrorCategory]string{
	Argument:      "Argument Error",
	Configuration: "Configuration Error",
	Prerequisite:  "Prerequisite Error",
	Runtime:       "Runtime Error",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Error"
}

// CLIError is an error with a category and remediation hints.
type CLIError struct {
	Category ErrorCategory
	// Message is the single line logged when the command fails.
	Message string
	// Remediation lists steps printed under "To fix this:".
	Remediation []string
	// Usage is the correct command syntax, shown for argument errors.
	Usage string
	// Err is the cause, if any. errors.Is and errors.As see through to it.
	Err error
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

func newError(category ErrorCategory, message string, remediation []string) *CLIError {
	return &CLIError{Category: category, Message: message, Remediation: remediation}
}

// NewArgumentError returns an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return newError(Argument, message, remediation)
}

// NewArgumentErrorWithUsage returns an Argument error that also prints usage.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	e := newError(Argument, message, remediation)
	e.Usage = usage
	return e
}

// NewRuntimeError returns a Runtime error.
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return newError(Runtime, message, remediation)
}

// Wrap categorizes err, keeping its message. A nil err yields nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	e := newError(category, err.Error(), remediation)
	e.Err = err
	return e
}

// WrapWithMessage is Wrap with "message: err" as the text.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	e := Wrap(err, category, remediation...)
	if e != nil {
		e.Message = fmt.Sprintf("%s: %v", message, err)
	}
	return e
}

// AsCLIError returns the first CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
