package cpu

import (
	"github.com/born-ml/strided/internal/blas"
	"github.com/born-ml/strided/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Operands of any layout are accepted; row- and column-major operands go to
// BLAS directly, others are materialized first. Only float32 and float64
// are supported.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	return blas.MatMul(a, b)
}

// MatVec performs matrix-vector multiplication: (M, K) @ (K) -> (M).
func (cpu *CPUBackend) MatVec(a, v *tensor.RawTensor) (*tensor.RawTensor, error) {
	return blas.MatVec(a, v)
}

// MatMulInto writes a @ b into dst, which may be a view of a larger tensor.
func (cpu *CPUBackend) MatMulInto(dst, a, b *tensor.RawTensor) error {
	return blas.MatMulInto(dst, a, b)
}

// MatVecInto writes a @ v into dst.
func (cpu *CPUBackend) MatVecInto(dst, a, v *tensor.RawTensor) error {
	return blas.MatVecInto(dst, a, v)
}
