package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a gomint error code.
type ErrorCode string

// Error codes.
const (
	// S0xxx: Parser/Syntax errors
	ErrStringNotClosed  ErrorCode = "S0101"
	ErrSyntaxError      ErrorCode = "S0201"
	ErrExpectedToken    ErrorCode = "S0202"
	ErrUnknownSection   ErrorCode = "S0203"
	ErrDuplicateSection ErrorCode = "S0204"

	// C0xxx: Compile errors
	ErrUnknownBlockTy   ErrorCode = "C0101"
	ErrUnknownIdent     ErrorCode = "C0102"
	ErrArity            ErrorCode = "C0103"
	ErrConstEval        ErrorCode = "C0104"
	ErrTooManyConstants ErrorCode = "C0105"
	ErrTooManyVariables ErrorCode = "C0106"

	// R0xxx: Run-time errors
	ErrInternal        ErrorCode = "R0101"
	ErrTypeMismatch    ErrorCode = "R0102"
	ErrWhenFallthrough ErrorCode = "R0103"
)

// Error represents a structured gomint error.
//
// Compile errors carry the source Position of the offending node (or -1 when
// unknown). Type errors fill Have and Expected.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Have     string
	Expected string
	Err      error
}

// NewError creates a new gomint error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// NewTypeError reports a value of the wrong kind. expected lists the accepted
// kinds separated by '|'.
func NewTypeError(have Value, expected string) *Error {
	return &Error{
		Code:     ErrTypeMismatch,
		Message:  fmt.Sprintf("type error: have %s, expected %s", have, expected),
		Position: -1,
		Have:     have.String(),
		Expected: expected,
	}
}

// NewInternalError reports a broken compiler or interpreter invariant.
func NewInternalError(format string, args ...interface{}) *Error {
	return &Error{
		Code:     ErrInternal,
		Message:  "internal error: " + fmt.Sprintf(format, args...),
		Position: -1,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// IsCode reports whether err, or any error it wraps, is an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Err
	}
	return false
}
