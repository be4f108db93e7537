// Package errors carries the coded errors returned by effectsize.
//
// Every failure that stops a standardization is an *Error with a Code.
// Callers branch on the code with [Is] or [GetCode] and show
// [UserMessage] to people. Codes in the INVALID_ family, plus
// FILE_NOT_FOUND, mean the caller passed something unusable and are
// reported by [Code.IsInput]; UNSUPPORTED means the model lacks a
// capability the requested computation needs.
//
// A method that does not suit the model is not an error: the
// standardize package logs a warning and falls back to another method.
//
//	if _, err := standardize.ParseMethod(name); errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    fmt.Println(errors.UserMessage(err))
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code classifies an *Error.
type Code string

const (
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT" // bad method, CI level or option
	ErrCodeInvalidModel    Code = "INVALID_MODEL"    // model description that cannot be built
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"   // unknown file or output format
	ErrCodeInvalidPath     Code = "INVALID_PATH"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	ErrCodeUnsupported Code = "UNSUPPORTED" // e.g. refit of a mixed model with OLS
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// IsInput reports whether c blames the caller's input rather than the
// model or the program.
func (c Code) IsInput() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeInvalidModel, ErrCodeInvalidFormat,
		ErrCodeInvalidPath, ErrCodeFileNotFound:
		return true
	}
	return false
}

// Error is a coded failure. Message is meant for people; Cause, when set,
// is the lower-level error that triggered it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error whose message is format applied to args.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with cause attached, so errors.Is and errors.As from the
// standard library still reach it.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error in err's chain carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain,
// without its code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
