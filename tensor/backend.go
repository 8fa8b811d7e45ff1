// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/strided/internal/tensor"

// Backend defines the linear algebra routines a compute backend provides.
//
// Implementations:
//   - backend/cpu: gonum BLAS, with contiguity checks and scratch
//     materialization for strided operands
//
// Example:
//
//	import (
//	    "github.com/born-ml/strided/tensor"
//	    "github.com/born-ml/strided/backend/cpu"
//	)
//
//	backend := cpu.New()
//	a := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	b := tensor.Ones[float32](tensor.Shape{3, 4}, backend)
//	c, err := a.MatMul(b) // uses backend.MatMul under the hood
type Backend = tensor.Backend
