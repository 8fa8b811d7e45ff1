package tensor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// arangeRaw returns a row-major float64 tensor holding 0, 1, 2, ...
func arangeRaw(t testing.TB, shape ...int) *RawTensor {
	t.Helper()
	raw, err := NewRaw(Shape(shape), Float64, CPU)
	require.NoError(t, err)
	data := mustElements[float64](raw.Storage())
	for i := range data {
		data[i] = float64(i)
	}
	return raw
}

// values reads a float64 tensor in logical order.
func values(t testing.TB, r *RawTensor) []float64 {
	t.Helper()
	out, err := ToSlice[float64](r)
	require.NoError(t, err)
	return out
}

// at reads one float64 element.
func at(t testing.TB, r *RawTensor, idx ...int) float64 {
	t.Helper()
	v, err := GetAt[float64](r, idx...)
	require.NoError(t, err)
	return v
}
