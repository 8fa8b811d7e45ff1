package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/strided/internal/parallel"
)

func colMajor3x3(t *testing.T) *RawTensor {
	t.Helper()
	cm, err := NewRawColMajor(Shape{3, 3}, Float64, CPU)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, SetAt(cm, float64(i*3+j), i, j))
		}
	}
	return cm
}

func TestCloneIsAlwaysRowMajor(t *testing.T) {
	raw := arangeRaw(t, 3, 3)
	stepped, err := raw.Slice(RangeStep(0, 3, 2), RangeStep(2, -1, -1))
	require.NoError(t, err)

	sources := map[string]*RawTensor{
		"row-major":      raw,
		"column-major":   colMajor3x3(t),
		"transposed":     raw.T(),
		"non-contiguous": stepped,
	}

	for name, src := range sources {
		t.Run(name, func(t *testing.T) {
			c := src.Clone()
			assert.Equal(t, RowMajor, c.Layout())
			assert.Equal(t, 0, c.Offset())
			assert.Equal(t, src.Shape(), c.Shape())
			assert.Equal(t, src.Shape().ComputeStrides(), c.Strides())
			assert.False(t, c.SharesStorage(src))
			assert.Equal(t, values(t, src), values(t, c))
			assert.Equal(t, src.NumElements(), c.Storage().Len())
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	raw := arangeRaw(t, 2, 2)
	c := raw.Clone()

	require.NoError(t, SetAt(c, 42.0, 0, 0))
	assert.Equal(t, 0.0, at(t, raw, 0, 0))
}

func TestCloneOfSubRange(t *testing.T) {
	raw := arangeRaw(t, 4, 3)
	rows, err := raw.Slice(Range(2, 4))
	require.NoError(t, err)

	c := rows.Clone()
	assert.Equal(t, 6, c.Storage().Len())
	assert.Equal(t, []float64{6, 7, 8, 9, 10, 11}, values(t, c))
}

func TestCloneParallel(t *testing.T) {
	SetCopyParallelism(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1})
	t.Cleanup(func() { SetCopyParallelism(parallel.DefaultConfig()) })

	raw := arangeRaw(t, 16, 5, 3)
	tr, err := raw.Transpose(2, 0, 1)
	require.NoError(t, err)

	assert.Equal(t, values(t, tr), values(t, tr.Clone()))
}

func TestCloneEveryDType(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		raw, err := NewRaw(Shape{2, 3}, dt, CPU)
		require.NoError(t, err)
		c := raw.T().Clone()
		assert.Equal(t, dt, c.DType())
		assert.Equal(t, Shape{3, 2}, c.Shape())
		assert.True(t, c.IsContiguous())
	}
}

func TestCloneEmptyAndScalar(t *testing.T) {
	empty, err := NewRaw(Shape{0, 4}, Float32, CPU)
	require.NoError(t, err)
	c := empty.T().Clone()
	assert.Equal(t, Shape{4, 0}, c.Shape())
	assert.Equal(t, 0, c.Storage().Len())

	raw := arangeRaw(t, 2, 2)
	s, err := raw.Slice(Index(1), Index(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, values(t, s.Clone()))
}

func TestContiguous(t *testing.T) {
	raw := arangeRaw(t, 2, 3)

	v, copied := raw.Contiguous()
	assert.False(t, copied)
	assert.True(t, v.SharesStorage(raw))

	c, copied := raw.T().Contiguous()
	assert.True(t, copied)
	assert.False(t, c.SharesStorage(raw))
	assert.True(t, c.IsContiguous())
}

func TestAssignFromStrided(t *testing.T) {
	dst, err := NewRaw(Shape{3, 2}, Float64, CPU)
	require.NoError(t, err)
	src := arangeRaw(t, 2, 3)

	require.NoError(t, dst.T().AssignFrom(src))
	assert.Equal(t, []float64{0, 3, 1, 4, 2, 5}, values(t, dst))
}

func TestAssignFromContiguous(t *testing.T) {
	dst, err := NewRaw(Shape{2, 3}, Float64, CPU)
	require.NoError(t, err)
	src := arangeRaw(t, 2, 3)

	require.NoError(t, dst.AssignFrom(src))
	assert.Equal(t, values(t, src), values(t, dst))
	assert.False(t, dst.SharesStorage(src))
}

func TestAssignFromOverlapping(t *testing.T) {
	raw := arangeRaw(t, 5)
	dst, err := raw.Slice(Range(1, 5))
	require.NoError(t, err)
	src, err := raw.Slice(Range(0, 4))
	require.NoError(t, err)

	require.NoError(t, dst.AssignFrom(src))
	assert.Equal(t, []float64{0, 0, 1, 2, 3}, values(t, raw))
}

func TestAssignFromTransposeOfSelf(t *testing.T) {
	raw := arangeRaw(t, 3, 3)

	require.NoError(t, raw.AssignFrom(raw.T()))
	assert.Equal(t, []float64{0, 3, 6, 1, 4, 7, 2, 5, 8}, values(t, raw))
}

func TestAssignFromErrors(t *testing.T) {
	dst := arangeRaw(t, 2, 3)

	err := dst.AssignFrom(arangeRaw(t, 3, 2))
	require.ErrorIs(t, err, ErrShapeMismatch)

	other, err := NewRaw(Shape{2, 3}, Int32, CPU)
	require.NoError(t, err)
	err = dst.AssignFrom(other)
	require.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestSetSlice(t *testing.T) {
	raw, err := NewRaw(Shape{3, 3}, Float64, CPU)
	require.NoError(t, err)
	id := raw.Storage().ID()

	row := arangeRaw(t, 3)
	require.NoError(t, raw.SetSlice(row, Index(1)))

	col := arangeRaw(t, 3)
	require.NoError(t, SetAt(col, 9.0, 0))
	require.NoError(t, raw.SetSlice(col, All(), Index(2)))

	assert.Equal(t, []float64{0, 0, 9, 0, 1, 1, 0, 0, 2}, values(t, raw))
	assert.Equal(t, id, raw.Storage().ID(), "storage is never reallocated")

	err = raw.SetSlice(arangeRaw(t, 2), Index(0))
	require.ErrorIs(t, err, ErrShapeMismatch)

	err = raw.SetSlice(row, Index(5))
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestFill(t *testing.T) {
	raw := arangeRaw(t, 3, 3)
	diag, err := NewRawStrided(raw.Storage(), Shape{3}, []int{4}, 0, CPU)
	require.NoError(t, err)

	require.NoError(t, Fill(diag, -1.0))
	assert.Equal(t, []float64{-1, 1, 2, 3, -1, 5, 6, 7, -1}, values(t, raw))

	require.ErrorIs(t, Fill(raw, int32(1)), ErrDTypeMismatch)
}

func TestToSliceDTypeMismatch(t *testing.T) {
	raw := arangeRaw(t, 2)
	_, err := ToSlice[int64](raw)
	require.ErrorIs(t, err, ErrDTypeMismatch)
}
