package tensor

import (
	"fmt"
	"iter"
)

// DotOffset returns offset + sum(index[k]*strides[k]). No bounds checks.
func DotOffset(offset int, strides, index []int) int {
	pos := offset
	for k, i := range index {
		pos += i * strides[k]
	}
	return pos
}

// Unravel writes the row-major multi-index of linear into idx.
func Unravel(linear int, shape Shape, idx []int) {
	for k := len(shape) - 1; k >= 0; k-- {
		ext := shape[k]
		idx[k] = linear % ext
		linear /= ext
	}
}

// nextIndex advances idx to the next row-major multi-index within shape.
// It returns false once idx wraps around past the last element.
func nextIndex(idx []int, shape Shape) bool {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < shape[k] {
			return true
		}
		idx[k] = 0
	}
	return false
}

// Position converts a multi-index into a storage position.
// It fails with ErrShapeMismatch if the index count differs from the rank and
// with ErrIndexOutOfBounds if any component lies outside its extent.
func (r *RawTensor) Position(index ...int) (int, error) {
	if len(index) != len(r.shape) {
		return 0, fmt.Errorf("index: expected %d indices, got %d: %w", len(r.shape), len(index), ErrShapeMismatch)
	}
	for k, i := range index {
		if i < 0 || i >= r.shape[k] {
			return 0, fmt.Errorf("index: %d out of range for axis %d (extent %d): %w",
				i, k, r.shape[k], ErrIndexOutOfBounds)
		}
	}
	return DotOffset(r.offset, r.stride, index), nil
}

// Positions returns the storage positions of all elements in logical
// (row-major index) order. The sequence is lazy and may be ranged over any
// number of times. Row-major contiguous handles are walked linearly; other
// layouts evaluate the stride dot product per element.
func (r *RawTensor) Positions() iter.Seq[int] {
	shape, strides, offset := r.shape, r.stride, r.offset
	return func(yield func(int) bool) {
		n := shape.NumElements()
		if n == 0 {
			return
		}
		if IsRowMajor(shape, strides) {
			for i := 0; i < n; i++ {
				if !yield(offset + i) {
					return
				}
			}
			return
		}
		idx := make([]int, len(shape))
		for {
			if !yield(DotOffset(offset, strides, idx)) {
				return
			}
			if !nextIndex(idx, shape) {
				return
			}
		}
	}
}

// Walk yields (multi-index, storage position) pairs in logical order.
// The index slice is reused between iterations and must not be retained.
func (r *RawTensor) Walk() iter.Seq2[[]int, int] {
	shape, strides, offset := r.shape, r.stride, r.offset
	return func(yield func([]int, int) bool) {
		n := shape.NumElements()
		if n == 0 {
			return
		}
		contiguous := IsRowMajor(shape, strides)
		idx := make([]int, len(shape))
		for i := 0; ; i++ {
			pos := offset + i
			if !contiguous {
				pos = DotOffset(offset, strides, idx)
			}
			if !yield(idx, pos) {
				return
			}
			if !nextIndex(idx, shape) {
				return
			}
		}
	}
}

// GetAt reads the element at index from a raw tensor holding T.
func GetAt[T DType](r *RawTensor, index ...int) (T, error) {
	var zero T
	data, err := Elements[T](r.storage)
	if err != nil {
		return zero, err
	}
	pos, err := r.Position(index...)
	if err != nil {
		return zero, err
	}
	return data[pos], nil
}

// SetAt writes value at index into a raw tensor holding T. The write goes
// to the shared storage and is visible through every aliasing handle.
func SetAt[T DType](r *RawTensor, value T, index ...int) error {
	data, err := Elements[T](r.storage)
	if err != nil {
		return err
	}
	pos, err := r.Position(index...)
	if err != nil {
		return err
	}
	data[pos] = value
	return nil
}
