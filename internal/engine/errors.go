package engine

import (
	"fmt"

	"github.com/brunoga/dom/internal/core"
)

var (
	// ErrMalformedPath reports an end-of-array entry where it is not
	// permitted, or an unparsable path string.
	ErrMalformedPath = core.ErrMalformedPath

	// ErrPathNotFound reports an intermediate path segment that does not
	// resolve to an existing value.
	ErrPathNotFound = fmt.Errorf("path not found")

	// ErrTypeMismatch reports index addressing on a value that is not
	// array-like, or key addressing on a value that is not object-like.
	ErrTypeMismatch = fmt.Errorf("type mismatch")

	// ErrIndexOutOfBounds reports a concrete index at or past the end of an
	// array.
	ErrIndexOutOfBounds = fmt.Errorf("index out of bounds")

	// ErrKeyNotFound reports a key that must exist but does not.
	ErrKeyNotFound = fmt.Errorf("key not found")

	// ErrValueMismatch reports a failed test operation.
	ErrValueMismatch = fmt.Errorf("values don't match")

	// ErrInvalidOperation reports an unknown op name or a missing or
	// ill-typed field in a serialized operation.
	ErrInvalidOperation = fmt.Errorf("invalid operation")

	// ErrInversionImpossible reports an inverse that needs a value absent
	// from the state it is computed against.
	ErrInversionImpossible = fmt.Errorf("inversion impossible")
)
