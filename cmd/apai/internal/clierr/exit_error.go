// SPDX-License-Identifier: MIT

// Package clierr carries process exit codes through the error chain so
// main() stays dumb: commands return an ExitError and the entry point asks
// ExitCodeOf for the code.
package clierr

import (
	"errors"
	"fmt"
)

// ExitError is an error with an explicit process exit code. It supports
// wrapping, so errors.Is/As still see the underlying cause.
type ExitError struct {
	code  int
	msg   string
	cause error
}

func (e *ExitError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.cause)
}

func (e *ExitError) ExitCode() int { return e.code }

func (e *ExitError) Unwrap() error { return e.cause }

// New creates an ExitError with a message.
func New(code int, msg string) error {
	return &ExitError{code: normalize(code), msg: msg}
}

// Newf is the formatted variant of New.
func Newf(code int, format string, args ...any) error {
	return &ExitError{code: normalize(code), msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an ExitError around an underlying cause.
func Wrap(code int, msg string, cause error) error {
	if cause == nil {
		return New(code, msg)
	}
	return &ExitError{code: normalize(code), msg: msg, cause: cause}
}

// ExitCodeOf extracts the exit code from any error, defaulting to 1.
func ExitCodeOf(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return 1
}

func normalize(code int) int {
	// Success is 0; an error must never map to it.
	if code <= 0 {
		return 1
	}
	return code
}
