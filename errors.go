package fmtx

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling. Every error returned by a
// formatting call is a *FormatError wrapping one of these.
var (
	ErrInvalidTemplate = errors.New("invalid template")
	ErrInvalidSpec     = errors.New("invalid format spec")
	ErrArgNotFound     = errors.New("argument not found")
	ErrIndexingMode    = errors.New("mixed argument indexing")
	ErrDynamicSpec     = errors.New("invalid dynamic width or precision")
	ErrKindMismatch    = errors.New("argument kind mismatch")
)

// FormatError reports a malformed template, a spec that is illegal for its
// argument, or an argument that cannot be resolved. Pos is the byte offset in
// the template where the problem was detected.
type FormatError struct {
	Msg string
	Pos int
	Err error
}

// Error returns the message without position.
func (e *FormatError) Error() string { return e.Msg }

// Unwrap returns the sentinel category.
func (e *FormatError) Unwrap() error { return e.Err }

func formatErr(kind error, pos int, msg string) *FormatError {
	return &FormatError{Msg: msg, Pos: pos, Err: kind}
}

// ContractViolation is panicked on programming errors, such as reserving
// fewer slots than named arguments. It is never returned.
type ContractViolation struct {
	Msg string
}

// Error implements error.
func (c *ContractViolation) Error() string { return "fmtx: contract violation: " + c.Msg }

func violate(format string, args ...any) {
	panic(&ContractViolation{Msg: fmt.Sprintf(format, args...)})
}
