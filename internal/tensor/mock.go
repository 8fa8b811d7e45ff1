package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a reference backend for testing. It multiplies matrices
// with plain nested loops over logical indices, so it accepts any layout and
// can be used to check the BLAS-backed CPU backend.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// MatMul computes (M, K) @ (K, N) with a triple loop.
func (m *MockBackend) MatMul(a, b *RawTensor) (*RawTensor, error) {
	if a.Rank() != 2 || b.Rank() != 2 || a.shape[1] != b.shape[0] {
		return nil, fmt.Errorf("mock matmul: %v @ %v: %w", a.shape, b.shape, ErrShapeMismatch)
	}
	rows, inner, cols := a.shape[0], a.shape[1], b.shape[1]
	return m.product(a, b, Shape{rows, cols}, inner, func(i, j, k int) ([]int, []int, []int) {
		return []int{i, k}, []int{k, j}, []int{i, j}
	})
}

// MatVec computes (M, K) @ (K) with a double loop.
func (m *MockBackend) MatVec(a, v *RawTensor) (*RawTensor, error) {
	if a.Rank() != 2 || v.Rank() != 1 || a.shape[1] != v.shape[0] {
		return nil, fmt.Errorf("mock matvec: %v @ %v: %w", a.shape, v.shape, ErrShapeMismatch)
	}
	rows, inner := a.shape[0], a.shape[1]
	return m.product(a, v, Shape{rows, 1}, inner, func(i, _, k int) ([]int, []int, []int) {
		return []int{i, k}, []int{k}, []int{i}
	})
}

// product accumulates sum_k a[ai] * b[bi] into out[oi] for every (i, j) of
// grid, where index maps (i, j, k) to the three multi-indices.
func (m *MockBackend) product(a, b *RawTensor, grid Shape, inner int,
	index func(i, j, k int) ([]int, []int, []int),
) (*RawTensor, error) {
	if a.DType() != b.DType() {
		return nil, fmt.Errorf("mock: %s vs %s: %w", a.DType(), b.DType(), ErrDTypeMismatch)
	}
	if !a.DType().IsFloat() {
		return nil, fmt.Errorf("mock: %s: %w", a.DType(), ErrUnsupportedElementType)
	}

	outShape := grid
	if b.Rank() == 1 {
		outShape = Shape{grid[0]}
	}
	out, err := NewRaw(outShape, a.DType(), CPU)
	if err != nil {
		return nil, err
	}

	for i := 0; i < grid[0]; i++ {
		for j := 0; j < grid[1]; j++ {
			sum := 0.0
			var oi []int
			for k := 0; k < inner; k++ {
				ai, bi, o := index(i, j, k)
				sum += m.load(a, ai) * m.load(b, bi)
				oi = o
			}
			if oi == nil {
				_, _, oi = index(i, j, 0)
			}
			m.store(out, oi, sum)
		}
	}
	return out, nil
}

func (m *MockBackend) load(r *RawTensor, idx []int) float64 {
	if r.DType() == Float32 {
		v, err := GetAt[float32](r, idx...)
		if err != nil {
			panic(err)
		}
		return float64(v)
	}
	v, err := GetAt[float64](r, idx...)
	if err != nil {
		panic(err)
	}
	return v
}

func (m *MockBackend) store(r *RawTensor, idx []int, v float64) {
	var err error
	if r.DType() == Float32 {
		err = SetAt(r, float32(v), idx...)
	} else {
		err = SetAt(r, v, idx...)
	}
	if err != nil {
		panic(err)
	}
}
