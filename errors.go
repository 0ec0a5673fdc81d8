package pdfcreator

import (
	"errors"
	"fmt"
)

// Sentinel errors for common generation failure conditions.
var (
	ErrNoSpec    = errors.New("pdfcreator: no form spec provided")
	ErrBadLogo   = errors.New("pdfcreator: logo image could not be decoded")
	ErrBadOption = errors.New("pdfcreator: invalid option value")
)

// OpError represents an error that occurred during a specific pipeline
// stage. It wraps an underlying error and includes the stage name for
// context.
type OpError struct {
	Op  string // stage name, e.g. "layout", "write"
	Err error  // underlying error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pdfcreator.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdfcreator.%s: unknown error", e.Op)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// newOpError creates a new OpError wrapping the given error with stage context.
func newOpError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
