// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/strided/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// Number is the subset of DType with arithmetic (everything but bool).
type Number = tensor.Number

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the only device of this module.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Layout is the contiguity class of a tensor: row-major, column-major or
// non-contiguous. It is derived from shape and strides on every call.
type Layout = tensor.Layout

// Layout constants.
const (
	NonContiguous Layout = tensor.NonContiguous
	RowMajor      Layout = tensor.RowMajor
	ColMajor      Layout = tensor.ColMajor
)

// Storage is the shared, fixed-length buffer behind tensor handles.
type Storage = tensor.Storage

// SliceSpec selects part of one axis. Build it with All, Index, Range or
// RangeStep.
type SliceSpec = tensor.SliceSpec

// Tensor is a generic type-safe tensor handle.
//
// T is the data type (float32, float64, int32, int64, uint8, bool).
// B is the backend implementation used for linear algebra.
//
// Views created by Slice, Transpose, Reshape, Expand, Flip, Squeeze and
// Unsqueeze share storage with their source; Clone is the only deep copy.
//
// Example:
//
//	backend := cpu.New()
//	x, _ := tensor.FromNested[float32]([][]float32{{0, 1, 2}, {3, 4, 5}}, backend)
//	xt := x.T()                 // view, strides swapped
//	y, _ := x.MatMul(xt)        // (2, 3) @ (3, 2)
type Tensor[T DType, B Backend] = tensor.Tensor[T, B]

// Classify derives the layout of a shape/strides pair.
func Classify(shape Shape, strides []int) Layout {
	return tensor.Classify(shape, strides)
}

// Slice specifications

// All keeps a whole axis.
func All() SliceSpec {
	return tensor.All()
}

// Index selects a single position and removes the axis.
func Index(i int) SliceSpec {
	return tensor.Index(i)
}

// Range selects the half-open interval [start, stop).
func Range(start, stop int) SliceSpec {
	return tensor.Range(start, stop)
}

// RangeStep selects start, start+step, ... before stop. Negative steps
// produce reversed views.
func RangeStep(start, stop, step int) SliceSpec {
	return tensor.RangeStep(start, stop, step)
}

// InversePermutation returns the permutation that undoes p.
func InversePermutation(p []int) []int {
	return tensor.InversePermutation(p)
}

// Creation functions

// New wraps a RawTensor in a typed handle.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return tensor.New[T, B](raw, b)
}

// Empty allocates a row-major tensor.
func Empty[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Empty[T, B](shape, b)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Zeros[T, B](shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[T Number, B Backend](shape Shape, b B) *Tensor[T, B] {
	return tensor.Ones[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	return tensor.Full[T, B](shape, value, b)
}

// FromSlice creates a tensor from flat data and a shape.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	return tensor.FromSlice[T, B](data, shape, b)
}

// FromNested creates a tensor from nested slices such as [][]float64.
//
// Example:
//
//	x, err := tensor.FromNested[float64]([][]float64{{1, 2}, {3, 4}}, backend)
func FromNested[T DType, B Backend](data any, b B) (*Tensor[T, B], error) {
	return tensor.FromNested[T, B](data, b)
}

// RandUniform creates a tensor of values drawn uniformly from [low, high)
// with an explicit random generator.
func RandUniform[T Number, B Backend](shape Shape, low, high T, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	return tensor.RandUniform[T, B](shape, low, high, rng, b)
}

// Arange creates a 1D tensor [start, start+1, ...) below end.
func Arange[T Number, B Backend](start, end T, b B) *Tensor[T, B] {
	return tensor.Arange[T, B](start, end, b)
}

// Linear algebra

// MatMul computes a @ b through the backend of a.
func MatMul[T DType, B Backend](a, b *Tensor[T, B]) (*Tensor[T, B], error) {
	return a.MatMul(b)
}

// MatVec computes a @ v through the backend of a.
func MatVec[T DType, B Backend](a, v *Tensor[T, B]) (*Tensor[T, B], error) {
	return a.MatVec(v)
}
