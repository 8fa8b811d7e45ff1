// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/strided/internal/backend/cpu"
	"github.com/born-ml/strided/internal/parallel"
	"github.com/born-ml/strided/tensor"
)

// Backend represents the CPU backend implementation.
//
// The CPU backend routes MatMul and MatVec through gonum BLAS after
// checking operand contiguity.
type Backend = internalcpu.CPUBackend

// Option configures the CPU backend.
type Option = internalcpu.Option

// ParallelConfig controls the parallel materializing copy.
type ParallelConfig = parallel.Config

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/strided/backend/cpu"
//	    "github.com/born-ml/strided/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	}
func New(opts ...Option) *Backend {
	return internalcpu.New(opts...)
}

// WithParallel sets the parallel configuration for materializing copies.
func WithParallel(cfg ParallelConfig) Option {
	return internalcpu.WithParallel(cfg)
}

// DefaultParallel returns the CPU-count based parallel configuration.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}
