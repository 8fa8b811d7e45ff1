// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides strided N-dimensional tensors with zero-copy views.
//
// # Overview
//
// A tensor handle is a shape, a stride per axis and an offset into a shared
// Storage buffer. The storage position of a multi-index i is
//
//	offset + i[0]*strides[0] + ... + i[n-1]*strides[n-1]
//
// Every view operation only computes new metadata:
//   - Slice: strides multiplied by the step, offset advanced by the start
//   - Transpose: shape and strides permuted
//   - Reshape: new strides when the layout allows it
//   - Expand: zero strides on broadcast axes
//   - Flip: one stride negated
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/strided/tensor"
//	    "github.com/born-ml/strided/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x, _ := tensor.FromNested[float32]([][]float32{
//	        {0, 1, 2},
//	        {3, 4, 5},
//	        {6, 7, 8},
//	    }, backend)
//
//	    xt := x.T()                         // strides [1, 3]
//	    v := xt.At(1, 2)                    // 7
//	    rows, _ := x.Slice(tensor.Range(1, 2)) // shape [1, 3], offset 3
//	}
//
// # Copy Policy
//
// Slicing never copies. Clone is the only deep-copy primitive and always
// produces a row-major tensor. Mutating a view mutates its source:
//
//	row, _ := x.Slice(tensor.Index(0))
//	row.Set(42, 1)     // x.At(0, 1) == 42
//
// Reshape returns a view or fails with ErrInvalidReshape; ReshapeCopy is the
// opt-in variant that clones when no view is possible.
//
// # Layouts
//
// Layout() reports RowMajor, ColMajor or NonContiguous. Row-major tensors
// are traversed with a linear walk, other layouts with a per-element stride
// dot product.
//
// # Linear Algebra
//
// MatMul and MatVec hand operands to BLAS. Row-major and column-major
// operands are passed with a leading dimension and transpose flag; other
// layouts are copied to a private scratch buffer first. Only float32 and
// float64 are supported; integer operands fail with
// ErrUnsupportedElementType.
//
// # Concurrency
//
// Handles may be read from several goroutines. Concurrent writes through
// views that alias the same storage are not synchronized and are the
// caller's responsibility.
package tensor
