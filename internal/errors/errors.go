// Package errors provides the error kinds reported by the render pipeline.
//
// Every stage returns either success or a terminal *Error carrying one of the
// codes below, so callers can tell which stage failed:
//
//	err := errors.Wrap(errors.ErrCodeDecode, cause, "logo %s", path)
//	if errors.Is(err, errors.ErrCodeDecode) {
//	    // report the offending path
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error kind.
type Code string

const (
	// ErrCodeConfig reports impossible geometry or an invalid option value.
	ErrCodeConfig Code = "CONFIG"
	// ErrCodeEncoding reports that the QR encoder rejected the input text.
	ErrCodeEncoding Code = "ENCODING"
	// ErrCodeDecode reports an unreadable or corrupt logo/background bitmap.
	ErrCodeDecode Code = "DECODE"
	// ErrCodeGeometry reports a background bitmap smaller than the canvas.
	ErrCodeGeometry Code = "GEOMETRY"
	// ErrCodeIO reports a failure persisting the final image.
	ErrCodeIO Code = "IO"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, or anything it wraps, is an *Error with code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the code from err, or "" when err is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// ExitCode maps an error to a process exit status for the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch GetCode(err) {
	case ErrCodeConfig:
		return 2
	case ErrCodeEncoding:
		return 3
	case ErrCodeDecode, ErrCodeGeometry:
		return 4
	case ErrCodeIO:
		return 5
	}
	return 1
}
