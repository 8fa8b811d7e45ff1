package tensor

import "errors"

// Sentinel errors returned (wrapped) by tensor operations.
// Use errors.Is to tell them apart.
var (
	// ErrShapeMismatch: an operation needs conforming shapes or ranks.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIndexOutOfBounds: a multi-index or slice bound lies outside the extents.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrUnsupportedElementType: the element type cannot reach the operation,
	// e.g. integer tensors passed to BLAS-backed routines.
	ErrUnsupportedElementType = errors.New("unsupported element type")

	// ErrInvalidReshape: the requested shape has a different size, or cannot
	// be expressed as a view of the current layout.
	ErrInvalidReshape = errors.New("invalid reshape")

	// ErrInvalidSlice: a slice specification is malformed (zero step).
	ErrInvalidSlice = errors.New("invalid slice")

	// ErrInvalidAxes: an axis permutation or axis argument is malformed.
	ErrInvalidAxes = errors.New("invalid axes")

	// ErrDTypeMismatch: operands or accessors disagree on the element type.
	ErrDTypeMismatch = errors.New("dtype mismatch")
)
