// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/strided/internal/tensor"

// Errors returned (wrapped) by tensor operations. Compare with errors.Is.
var (
	ErrShapeMismatch          = tensor.ErrShapeMismatch
	ErrIndexOutOfBounds       = tensor.ErrIndexOutOfBounds
	ErrUnsupportedElementType = tensor.ErrUnsupportedElementType
	ErrInvalidReshape         = tensor.ErrInvalidReshape
	ErrInvalidSlice           = tensor.ErrInvalidSlice
	ErrInvalidAxes            = tensor.ErrInvalidAxes
	ErrDTypeMismatch          = tensor.ErrDTypeMismatch
)
