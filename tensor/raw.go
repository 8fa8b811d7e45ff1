// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/strided/internal/tensor"
)

// RawTensor is the untyped tensor handle: shape, strides and offset over a
// shared Storage.
//
// RawTensor provides:
//   - Layout information via Shape(), Strides(), Offset(), Layout()
//   - Checked multi-index to storage position conversion via Position()
//   - Lazy logical-order traversal via Positions() and Walk()
//   - Zero-copy views (Slice, Transpose, Reshape, Expand, Flip) and the
//     deep copy Clone()
//
// Most users should use the high-level Tensor[T, B] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32, tensor.CPU)
//	col, _ := raw.Slice(tensor.All(), tensor.Index(1)) // view, no copy
//	dense := col.Clone()                               // row-major copy
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed row-major tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// NewRawColMajor allocates a zeroed column-major tensor.
func NewRawColMajor(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRawColMajor(shape, dtype, device)
}

// NewRawStrided creates a handle with explicit strides and offset over an
// existing storage, rejecting layouts that reach outside the buffer.
func NewRawStrided(storage *Storage, shape Shape, strides []int, offset int, device Device) (*RawTensor, error) {
	return tensor.NewRawStrided(storage, shape, strides, offset, device)
}

// NewStorage allocates a zeroed buffer of n elements.
func NewStorage(dtype DataType, n int) (*Storage, error) {
	return tensor.NewStorage(dtype, n)
}

// Elements returns a storage buffer as a typed slice (zero-copy).
func Elements[T DType](s *Storage) ([]T, error) {
	return tensor.Elements[T](s)
}

// GetAt reads one element of a raw tensor holding T.
func GetAt[T DType](r *RawTensor, index ...int) (T, error) {
	return tensor.GetAt[T](r, index...)
}

// SetAt writes one element of a raw tensor holding T. The write is visible
// through every handle sharing the storage.
func SetAt[T DType](r *RawTensor, value T, index ...int) error {
	return tensor.SetAt(r, value, index...)
}

// Fill writes value into every element reachable through r's strides.
func Fill[T DType](r *RawTensor, value T) error {
	return tensor.Fill(r, value)
}

// ToSlice copies the elements of r into a new slice in logical order.
func ToSlice[T DType](r *RawTensor) ([]T, error) {
	return tensor.ToSlice[T](r)
}
