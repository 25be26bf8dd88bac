package hankel

import (
	"errors"
	"fmt"

	"github.com/born-ml/hankel/internal/tensor"
)

// Common errors. Match them with errors.Is.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidWindowSize also matches ErrShapeMismatch.
	ErrInvalidWindowSize = fmt.Errorf("%w: window larger than input", ErrShapeMismatch)
)

// ShapeError provides detailed information about a rejected shape or index.
type ShapeError struct {
	Op      string       // Operation that rejected its arguments (e.g. "forward")
	Want    tensor.Shape // Expected shape or bounds, if known
	Got     tensor.Shape // Offending shape or index, if known
	Details string       // Additional details
	Err     error        // One of the sentinel errors above
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	switch {
	case e.Want != nil && e.Got != nil:
		return fmt.Sprintf("%s: %v: %s (want %v, got %v)", e.Op, e.Err, e.Details, e.Want, e.Got)
	case e.Got != nil:
		return fmt.Sprintf("%s: %v: %s (got %v)", e.Op, e.Err, e.Details, e.Got)
	default:
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Details)
	}
}

// Unwrap returns the sentinel error.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

func shapeErr(op string, want, got tensor.Shape, format string, args ...any) error {
	return &ShapeError{Op: op, Want: want, Got: got, Details: fmt.Sprintf(format, args...), Err: ErrShapeMismatch}
}
