package tensor

// Backend defines the linear algebra entry points a compute backend provides.
// View, indexing and copy operations are backend independent and live on
// RawTensor; only the routines that hand memory to native code go through
// a Backend.
//
// Implementations:
//   - CPU: gonum BLAS through the internal/blas adapter
type Backend interface {
	// MatMul computes (M, K) @ (K, N) -> (M, N) into a new row-major tensor.
	MatMul(a, b *RawTensor) (*RawTensor, error)

	// MatVec computes (M, K) @ (K) -> (M) into a new tensor.
	MatVec(a, v *RawTensor) (*RawTensor, error)

	// Metadata
	Name() string
	Device() Device
}
