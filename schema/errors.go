package schema

import (
	"errors"
	"fmt"
)

// Domain errors for case reading and dataset operations.
var (
	// ErrCaseNotFound indicates the case root is missing or holds no
	// readable turbineOutput data.
	ErrCaseNotFound = errors.New("case not found")

	// ErrUnknownKey indicates a requested output key is absent from the
	// case's vocabulary.
	ErrUnknownKey = errors.New("unknown output key")

	// ErrMalformedOutput indicates an output file exists but its contents
	// violate the turbineOutput format contract.
	ErrMalformedOutput = errors.New("malformed turbine output")

	// ErrBadWindow indicates crop bounds with lower > upper or NaN bounds.
	ErrBadWindow = errors.New("invalid time window")

	// ErrBadTarget indicates a non-finite sample target.
	ErrBadTarget = errors.New("invalid sample target")

	// ErrTargetBeforeStart indicates a sample target earlier than the first
	// recorded timestamp.
	ErrTargetBeforeStart = errors.New("target precedes first sample")

	// ErrEmptySeries indicates a sample request against a zero-length series.
	ErrEmptySeries = errors.New("empty series")
)

// KeyError decorates a domain error with the output key that triggered it.
type KeyError struct {
	Key     string
	Wrapped error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("%s: %q", e.Wrapped, e.Key)
}

func (e *KeyError) Unwrap() error {
	return e.Wrapped
}

// NewKeyError wraps err with the key it refers to.
func NewKeyError(key string, err error) *KeyError {
	return &KeyError{Key: key, Wrapped: err}
}

// ShapeError reports a mismatch between a file's header and its rows, or
// between the time axis and the data block. It always unwraps to
// ErrMalformedOutput.
type ShapeError struct {
	Key      string // Output key being parsed
	Line     int    // 1-based line number in the file, 0 when not line-scoped
	Expected int    // Column or row count the header promises
	Observed int    // Column or row count actually found
	Detail   string // Short description of the violated rule
}

func (e *ShapeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: key %q line %d: %s (expected %d, observed %d)",
			ErrMalformedOutput, e.Key, e.Line, e.Detail, e.Expected, e.Observed)
	}
	return fmt.Sprintf("%s: key %q: %s (expected %d, observed %d)",
		ErrMalformedOutput, e.Key, e.Detail, e.Expected, e.Observed)
}

func (e *ShapeError) Unwrap() error {
	return ErrMalformedOutput
}
