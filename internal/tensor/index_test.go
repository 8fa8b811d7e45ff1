package tensor

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	raw := arangeRaw(t, 2, 3, 4)

	pos, err := raw.Position(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, pos)

	pos, err = raw.Position(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	_, err = raw.Position(1, 2)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = raw.Position(2, 0, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)

	_, err = raw.Position(0, -1, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestPositionScalar(t *testing.T) {
	raw, err := NewRaw(Shape{}, Float64, CPU)
	require.NoError(t, err)

	pos, err := raw.Position()
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, []int{0}, slices.Collect(raw.Positions()))
}

func TestTransposeReadsThroughStrides(t *testing.T) {
	raw := arangeRaw(t, 3, 3)
	tr := raw.T()

	assert.Equal(t, []int{1, 3}, tr.Strides())
	assert.Equal(t, 7.0, at(t, tr, 1, 2))
	assert.Equal(t, []float64{0, 3, 6, 1, 4, 7, 2, 5, 8}, values(t, tr))
}

func TestPositionsRowMajorIsLinear(t *testing.T) {
	raw := arangeRaw(t, 4, 3)
	rows, err := raw.Slice(Range(1, 3))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, slices.Collect(rows.Positions()))
}

func TestPositionsRestartable(t *testing.T) {
	raw := arangeRaw(t, 2, 3).T()
	seq := raw.Positions()

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, first)
	assert.Equal(t, first, second)
}

func TestPositionsEarlyStop(t *testing.T) {
	raw := arangeRaw(t, 4, 4).T()

	var got []int
	for pos := range raw.Positions() {
		if len(got) == 3 {
			break
		}
		got = append(got, pos)
	}
	assert.Equal(t, []int{0, 4, 8}, got)
}

func TestPositionsEmpty(t *testing.T) {
	raw, err := NewRaw(Shape{3, 0, 2}, Float64, CPU)
	require.NoError(t, err)

	assert.Empty(t, slices.Collect(raw.Positions()))
	for range raw.Walk() {
		t.Fatal("walk over an empty tensor yielded")
	}
}

func TestWalk(t *testing.T) {
	raw := arangeRaw(t, 2, 3).T()

	var indices [][]int
	var positions []int
	for idx, pos := range raw.Walk() {
		indices = append(indices, slices.Clone(idx))
		positions = append(positions, pos)
	}
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}, indices)
	assert.Equal(t, []int{0, 3, 1, 4, 2, 5}, positions)
}

func TestUnravel(t *testing.T) {
	idx := make([]int, 3)
	Unravel(23, Shape{2, 3, 4}, idx)
	assert.Equal(t, []int{1, 2, 3}, idx)

	Unravel(0, Shape{2, 3, 4}, idx)
	assert.Equal(t, []int{0, 0, 0}, idx)
}

func TestGetSetAt(t *testing.T) {
	raw := arangeRaw(t, 2, 2)

	require.NoError(t, SetAt(raw, 9.5, 1, 0))
	assert.Equal(t, 9.5, at(t, raw, 1, 0))

	_, err := GetAt[float32](raw, 0, 0)
	require.ErrorIs(t, err, ErrDTypeMismatch)

	err = SetAt(raw, 1.0, 2, 0)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}

// model is an independent description of a view: read(idx) returns the
// source element that the view's index idx must address.
type model struct {
	shape Shape
	read  func(idx []int) float64
}

// forEachIndex visits every multi-index of shape with nested loops.
func forEachIndex(shape Shape, visit func(idx []int)) {
	idx := make([]int, len(shape))
	var rec func(k int)
	rec = func(k int) {
		if k == len(shape) {
			visit(idx)
			return
		}
		for i := 0; i < shape[k]; i++ {
			idx[k] = i
			rec(k + 1)
		}
	}
	rec(0)
}

func randomView(t *testing.T, rng *rand.Rand, raw *RawTensor, m model) (*RawTensor, model) {
	t.Helper()
	rank := raw.Rank()

	switch rng.IntN(3) {
	case 0:
		perm := rng.Perm(rank)
		view, err := raw.Transpose(perm...)
		require.NoError(t, err)
		shape := make(Shape, rank)
		for i, ax := range perm {
			shape[i] = m.shape[ax]
		}
		read := m.read
		return view, model{shape: shape, read: func(idx []int) float64 {
			src := make([]int, rank)
			for i, ax := range perm {
				src[ax] = idx[i]
			}
			return read(src)
		}}

	case 1:
		specs := make([]SliceSpec, rank)
		starts := make([]int, rank)
		steps := make([]int, rank)
		shape := make(Shape, rank)
		for k := range specs {
			ext := m.shape[k]
			step := 1 + rng.IntN(2)
			start := rng.IntN(ext)
			if rng.IntN(2) == 0 {
				stop := start + rng.IntN(ext-start+1)
				specs[k] = RangeStep(start, stop, step)
				shape[k] = (stop - start + step - 1) / step
			} else {
				stop := start - 1 - rng.IntN(start+1)
				specs[k] = RangeStep(start, stop, -step)
				shape[k] = (start - stop + step - 1) / step
				step = -step
			}
			starts[k], steps[k] = start, step
		}
		view, err := raw.Slice(specs...)
		require.NoError(t, err)
		read := m.read
		return view, model{shape: shape, read: func(idx []int) float64 {
			src := make([]int, rank)
			for k := range idx {
				src[k] = starts[k] + idx[k]*steps[k]
			}
			return read(src)
		}}

	default:
		axis := rng.IntN(rank)
		view, err := raw.Flip(axis)
		require.NoError(t, err)
		ext := m.shape[axis]
		read := m.read
		return view, model{shape: m.shape.Clone(), read: func(idx []int) float64 {
			src := slices.Clone(idx)
			src[axis] = ext - 1 - idx[axis]
			return read(src)
		}}
	}
}

func TestPositionsMatchNestedLoops(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 200; trial++ {
		rank := 1 + rng.IntN(4)
		shape := make(Shape, rank)
		for k := range shape {
			shape[k] = 1 + rng.IntN(4)
		}
		base := arangeRaw(t, shape...)
		baseStrides := shape.ComputeStrides()
		m := model{shape: shape.Clone(), read: func(idx []int) float64 {
			return float64(DotOffset(0, baseStrides, idx))
		}}

		view := base
		for step := 0; step < 1+rng.IntN(4); step++ {
			if view.NumElements() == 0 {
				break
			}
			view, m = randomView(t, rng, view, m)
		}

		require.Equal(t, m.shape, view.Shape(), "trial %d", trial)

		var want []float64
		forEachIndex(m.shape, func(idx []int) {
			want = append(want, m.read(idx))
			assert.Equal(t, m.read(idx), at(t, view, idx...), "trial %d index %v", trial, idx)
		})
		if want == nil {
			want = []float64{}
		}
		assert.Equal(t, want, values(t, view), "trial %d", trial)
		assert.Equal(t, want, values(t, view.Clone()), "trial %d clone", trial)
	}
}
