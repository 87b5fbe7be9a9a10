// Package validation gates externally authored theme input: single variable
// values typed by a user, pasted imported themes and custom theme artifacts.
//
// Validators never panic and never return Go errors. They report a Result
// the caller branches on; Result.Err adapts it for error-returning code.
package validation

import "fmt"

// Result is the outcome of a validator.
type Result struct {
	IsValid bool
	Error   string
}

// Valid is the passing Result.
func Valid() Result {
	return Result{IsValid: true}
}

// Invalid builds a failing Result with a formatted message.
func Invalid(format string, args ...any) Result {
	return Result{IsValid: false, Error: fmt.Sprintf(format, args...)}
}

// Err returns nil for a passing result, otherwise an *Error.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &Error{Message: r.Error}
}

// Error is a failed validation surfaced as a Go error.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "validation failed: " + e.Message
}
