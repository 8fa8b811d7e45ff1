package tensor

import (
	"fmt"
	"strings"
)

// Shape represents the extents of a tensor, one per axis.
type Shape []int

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements.
// A rank-0 shape is a scalar with one element; any zero extent yields zero.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that no extent is negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// String formats the shape as [d0, d1, ...].
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] = product of all extents after i, so the last axis changes fastest.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// ColMajorStrides calculates column-major strides for the shape
// (first axis changes fastest).
func (s Shape) ColMajorStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := range s {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// CheckSameShape returns ErrShapeMismatch, tagged with op, unless a and b
// have the same rank and extents.
func CheckSameShape(op string, a, b Shape) error {
	if !a.Equal(b) {
		return fmt.Errorf("%s: %v vs %v: %w", op, a, b, ErrShapeMismatch)
	}
	return nil
}

// normalizeAxis maps a possibly negative axis into [0, rank).
func normalizeAxis(axis, rank int) (int, bool) {
	if axis < 0 {
		axis += rank
	}
	return axis, axis >= 0 && axis < rank
}
