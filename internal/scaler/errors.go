package scaler

import (
	"errors"
	"fmt"
)

// Negative error codes in the style of AVERROR(errno)
const (
	CodeUnknown = -1
	CodeNoMem   = -12
	CodeInvalid = -22
)

// ErrClosed is returned when a closed Context is used
var ErrClosed = errors.New("scaler context is closed")

// Error is a scaler failure carrying a negative code
type Error struct {
	Op   string
	Code int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v (code %d)", e.Op, e.Err, e.Code)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(op string, code int, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// Code extracts the negative code from err. Errors that did not come from
// the scaler map to CodeUnknown; nil maps to 0.
func Code(err error) int {
	if err == nil {
		return 0
	}
	var se *Error
	if errors.As(err, &se) && se.Code != 0 {
		return se.Code
	}
	return CodeUnknown
}
