// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the CPU backend for strided tensors.
//
// # Overview
//
// The backend implements MatMul and MatVec on top of gonum BLAS
// (gonum.org/v1/gonum/blas). Before each call every operand is classified:
//   - row-major: passed with its leading dimension, not transposed
//   - column-major: passed as the transposed row-major matrix
//   - anything else: materialized into a scratch row-major copy
//
// Scratch copies are never written back into caller tensors. MatMulInto and
// MatVecInto accept an output view of any layout; when the view cannot be
// handed to BLAS directly, the result is computed in scratch and copied
// through the view's strides.
//
// # Basic Usage
//
//	backend := cpu.New()
//	a, _ := tensor.FromNested[float64]([][]float64{{1, 2}, {3, 4}}, backend)
//	c, err := a.MatMul(a.T())
//
// # Element Types
//
// Only float32 and float64 reach BLAS. Integer tensors fail with
// tensor.ErrUnsupportedElementType.
//
// # Thread Safety
//
// The backend holds no mutable state and is safe for concurrent use.
// Tensors passed to it follow the aliasing rules of package tensor.
package cpu
