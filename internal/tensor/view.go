package tensor

import (
	"fmt"
	"slices"
)

// SliceSpec selects a subset of one axis: a half-open range with a step, or
// a single index that collapses the axis.
type SliceSpec struct {
	start, stop, step int
	index             bool
	all               bool
}

// All keeps the whole axis.
func All() SliceSpec {
	return SliceSpec{all: true}
}

// Index selects position i and removes the axis from the result.
func Index(i int) SliceSpec {
	return SliceSpec{start: i, index: true}
}

// Range selects [start, stop) with step 1.
func Range(start, stop int) SliceSpec {
	return SliceSpec{start: start, stop: stop, step: 1}
}

// RangeStep selects start, start+step, ... up to but excluding stop.
// A negative step walks downward and produces a reversed view; in that case
// -1 <= stop <= start < extent.
func RangeStep(start, stop, step int) SliceSpec {
	return SliceSpec{start: start, stop: stop, step: step}
}

// String formats the spec in Python-like slice notation.
func (s SliceSpec) String() string {
	switch {
	case s.all:
		return ":"
	case s.index:
		return fmt.Sprintf("%d", s.start)
	default:
		return fmt.Sprintf("%d:%d:%d", s.start, s.stop, s.step)
	}
}

// resolve checks the spec against an axis extent and returns the first
// selected position, the number of selected positions and the step.
func (s SliceSpec) resolve(ext int) (start, count, step int, err error) {
	switch {
	case s.all:
		return 0, ext, 1, nil
	case s.index:
		if s.start < 0 || s.start >= ext {
			return 0, 0, 0, fmt.Errorf("index %d outside extent %d: %w", s.start, ext, ErrIndexOutOfBounds)
		}
		return s.start, 1, 1, nil
	case s.step == 0:
		return 0, 0, 0, fmt.Errorf("zero step: %w", ErrInvalidSlice)
	case s.step > 0:
		if s.start < 0 || s.start > s.stop || s.stop > ext {
			return 0, 0, 0, fmt.Errorf("range %d:%d outside extent %d: %w", s.start, s.stop, ext, ErrIndexOutOfBounds)
		}
		return s.start, (s.stop - s.start + s.step - 1) / s.step, s.step, nil
	default:
		if s.stop < -1 || s.stop > s.start || s.start >= ext {
			return 0, 0, 0, fmt.Errorf("range %d:%d:%d outside extent %d: %w",
				s.start, s.stop, s.step, ext, ErrIndexOutOfBounds)
		}
		return s.start, (s.start - s.stop - s.step - 1) / -s.step, s.step, nil
	}
}

// Slice returns a view selecting specs along the leading axes; axes without
// a spec are kept whole. The result aliases r's storage: no element is
// copied, and writes through either handle are visible through the other.
func (r *RawTensor) Slice(specs ...SliceSpec) (*RawTensor, error) {
	rank := len(r.shape)
	if len(specs) > rank {
		return nil, fmt.Errorf("slice: %d specs for rank %d: %w", len(specs), rank, ErrShapeMismatch)
	}

	offset := r.offset
	shape := make(Shape, 0, rank)
	strides := make([]int, 0, rank)
	for k := 0; k < rank; k++ {
		spec := All()
		if k < len(specs) {
			spec = specs[k]
		}
		start, count, step, err := spec.resolve(r.shape[k])
		if err != nil {
			return nil, fmt.Errorf("slice: axis %d: %w", k, err)
		}
		if count > 0 {
			offset += start * r.stride[k]
		}
		if spec.index {
			continue
		}
		shape = append(shape, count)
		strides = append(strides, r.stride[k]*step)
	}
	return r.derive(shape, strides, offset), nil
}

// Transpose permutes the axes: result axis i is source axis axes[i].
// With no arguments all axes are reversed. Always a view.
func (r *RawTensor) Transpose(axes ...int) (*RawTensor, error) {
	rank := len(r.shape)
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if err := checkPermutation(axes, rank); err != nil {
		return nil, fmt.Errorf("transpose: %w", err)
	}

	shape := make(Shape, rank)
	strides := make([]int, rank)
	for i, ax := range axes {
		shape[i] = r.shape[ax]
		strides[i] = r.stride[ax]
	}
	return r.derive(shape, strides, r.offset), nil
}

// T swaps the last two axes. Handles of rank < 2 are returned as plain views.
func (r *RawTensor) T() *RawTensor {
	rank := len(r.shape)
	if rank < 2 {
		return r.View()
	}
	shape := r.shape.Clone()
	strides := r.Strides()
	shape[rank-1], shape[rank-2] = shape[rank-2], shape[rank-1]
	strides[rank-1], strides[rank-2] = strides[rank-2], strides[rank-1]
	return r.derive(shape, strides, r.offset)
}

func checkPermutation(axes []int, rank int) error {
	if len(axes) != rank {
		return fmt.Errorf("%d axes for rank %d: %w", len(axes), rank, ErrInvalidAxes)
	}
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return fmt.Errorf("axis %d out of range for rank %d: %w", ax, rank, ErrInvalidAxes)
		}
		if seen[ax] {
			return fmt.Errorf("duplicate axis %d: %w", ax, ErrInvalidAxes)
		}
		seen[ax] = true
	}
	return nil
}

// InversePermutation returns q such that q[p[i]] = i.
func InversePermutation(p []int) []int {
	q := make([]int, len(p))
	for i, ax := range p {
		q[ax] = i
	}
	return q
}

// Reshape returns a view with newShape. One extent may be -1 and is
// inferred from the others. The view exists whenever the new shape can be
// expressed through strides over the current layout, which is always the
// case for row-major contiguous handles. Otherwise Reshape fails with
// ErrInvalidReshape; use ReshapeCopy to force a materializing copy.
func (r *RawTensor) Reshape(newShape ...int) (*RawTensor, error) {
	shape, err := inferShape(r.NumElements(), newShape)
	if err != nil {
		return nil, err
	}
	strides, ok := viewStrides(r.shape, r.stride, shape)
	if !ok {
		return nil, fmt.Errorf("reshape: %v (strides %v) to %v requires copy: %w",
			r.shape, r.stride, shape, ErrInvalidReshape)
	}
	return r.derive(shape, strides, r.offset), nil
}

// inferShape resolves a single -1 extent and checks that the element count
// is preserved.
func inferShape(size int, requested []int) (Shape, error) {
	shape := Shape(slices.Clone(requested))
	infer := -1
	known := 1
	for i, d := range shape {
		switch {
		case d == -1 && infer < 0:
			infer = i
		case d < 0:
			return nil, fmt.Errorf("reshape: invalid extent %d in %v: %w", d, requested, ErrInvalidReshape)
		default:
			known *= d
		}
	}
	if infer >= 0 {
		if known == 0 || size%known != 0 {
			return nil, fmt.Errorf("reshape: cannot infer extent of %v from %d elements: %w",
				requested, size, ErrInvalidReshape)
		}
		shape[infer] = size / known
	}
	if shape.NumElements() != size {
		return nil, fmt.Errorf("reshape: %d elements into %v: %w", size, shape, ErrInvalidReshape)
	}
	return shape, nil
}

// viewStrides computes strides that give newShape the same logical element
// order as (shape, strides), or reports false if no such strides exist.
// Groups of source axes that merge or split must be row-major contiguous
// among themselves.
func viewStrides(shape Shape, strides []int, newShape Shape) ([]int, bool) {
	if shape.NumElements() == 0 {
		return newShape.ComputeStrides(), true
	}

	oldDims := make([]int, 0, len(shape))
	oldStrides := make([]int, 0, len(shape))
	for k, d := range shape {
		if d != 1 {
			oldDims = append(oldDims, d)
			oldStrides = append(oldStrides, strides[k])
		}
	}

	out := make([]int, len(newShape))
	ni, nj := 0, 1
	oi, oj := 0, 1
	for ni < len(newShape) && oi < len(oldDims) {
		np, op := newShape[ni], oldDims[oi]
		for np != op {
			if np < op {
				np *= newShape[nj]
				nj++
			} else {
				op *= oldDims[oj]
				oj++
			}
		}
		for k := oi; k < oj-1; k++ {
			if oldStrides[k] != oldDims[k+1]*oldStrides[k+1] {
				return nil, false
			}
		}
		out[nj-1] = oldStrides[oj-1]
		for k := nj - 1; k > ni; k-- {
			out[k-1] = out[k] * newShape[k]
		}
		ni, nj = nj, nj+1
		oi, oj = oj, oj+1
	}

	last := 1
	if ni > 0 {
		last = out[ni-1]
	}
	for k := ni; k < len(newShape); k++ {
		out[k] = last
	}
	return out, true
}

// Expand returns a broadcast view with the given shape. Shapes align from
// the right; source axes of extent 1 and new leading axes get stride 0.
// Writing through a broadcast view writes the same element repeatedly.
func (r *RawTensor) Expand(shape ...int) (*RawTensor, error) {
	target := Shape(shape)
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("expand: %w", err)
	}
	if len(target) < len(r.shape) {
		return nil, fmt.Errorf("expand: %v to %v: %w", r.shape, target, ErrShapeMismatch)
	}

	lead := len(target) - len(r.shape)
	strides := make([]int, len(target))
	for i := range target {
		k := i - lead
		if k < 0 {
			continue
		}
		switch r.shape[k] {
		case target[i]:
			strides[i] = r.stride[k]
		case 1:
			strides[i] = 0
		default:
			return nil, fmt.Errorf("expand: axis %d from %d to %d: %w", k, r.shape[k], target[i], ErrShapeMismatch)
		}
	}
	return r.derive(target.Clone(), strides, r.offset), nil
}

// Flip reverses one axis (negative axes count from the end). Always a view.
func (r *RawTensor) Flip(axis int) (*RawTensor, error) {
	ax, ok := normalizeAxis(axis, len(r.shape))
	if !ok {
		return nil, fmt.Errorf("flip: axis %d for rank %d: %w", axis, len(r.shape), ErrInvalidAxes)
	}
	strides := r.Strides()
	offset := r.offset
	if r.shape[ax] > 0 {
		offset += (r.shape[ax] - 1) * strides[ax]
	}
	strides[ax] = -strides[ax]
	return r.derive(r.shape.Clone(), strides, offset), nil
}

// Squeeze removes an axis of extent 1.
func (r *RawTensor) Squeeze(axis int) (*RawTensor, error) {
	ax, ok := normalizeAxis(axis, len(r.shape))
	if !ok {
		return nil, fmt.Errorf("squeeze: axis %d for rank %d: %w", axis, len(r.shape), ErrInvalidAxes)
	}
	if r.shape[ax] != 1 {
		return nil, fmt.Errorf("squeeze: axis %d has extent %d, must be 1: %w", ax, r.shape[ax], ErrShapeMismatch)
	}
	return r.derive(slices.Delete(r.shape.Clone(), ax, ax+1), slices.Delete(r.Strides(), ax, ax+1), r.offset), nil
}

// Unsqueeze inserts an axis of extent 1 at position axis in [0, rank].
// Negative axes count from rank+1.
func (r *RawTensor) Unsqueeze(axis int) (*RawTensor, error) {
	ax, ok := normalizeAxis(axis, len(r.shape)+1)
	if !ok {
		return nil, fmt.Errorf("unsqueeze: axis %d for rank %d: %w", axis, len(r.shape), ErrInvalidAxes)
	}
	stride := 1
	if ax < len(r.shape) {
		stride = r.stride[ax] * r.shape[ax]
	}
	return r.derive(slices.Insert(r.shape.Clone(), ax, 1), slices.Insert(r.Strides(), ax, stride), r.offset), nil
}
