package tensor

import (
	"fmt"
	"sync"

	"github.com/born-ml/strided/internal/parallel"
)

var (
	copyMu  sync.RWMutex
	copyCfg = parallel.DefaultConfig()
)

// SetCopyParallelism replaces the parallel configuration used when cloning
// non-contiguous tensors.
func SetCopyParallelism(cfg parallel.Config) {
	copyMu.Lock()
	defer copyMu.Unlock()
	copyCfg = cfg
}

func copyParallelism() parallel.Config {
	copyMu.RLock()
	defer copyMu.RUnlock()
	return copyCfg
}

// Clone materializes the tensor into a newly allocated row-major storage,
// copying every element in logical order. It is the only deep-copy
// primitive: slicing, transposition and reshaping never copy.
func (r *RawTensor) Clone() *RawTensor {
	dst, err := NewRaw(r.shape, r.DType(), r.device)
	if err != nil {
		panic(fmt.Sprintf("clone: %v", err)) // shape was validated when r was built
	}

	switch r.DType() {
	case Float32:
		gather(mustElements[float32](dst.storage), mustElements[float32](r.storage), r)
	case Float64:
		gather(mustElements[float64](dst.storage), mustElements[float64](r.storage), r)
	case Int32:
		gather(mustElements[int32](dst.storage), mustElements[int32](r.storage), r)
	case Int64:
		gather(mustElements[int64](dst.storage), mustElements[int64](r.storage), r)
	case Uint8:
		gather(mustElements[uint8](dst.storage), mustElements[uint8](r.storage), r)
	case Bool:
		gather(mustElements[bool](dst.storage), mustElements[bool](r.storage), r)
	}
	return dst
}

// Contiguous returns a view of r if it is already row-major contiguous and
// a Clone otherwise. The second result reports whether a copy was made.
func (r *RawTensor) Contiguous() (*RawTensor, bool) {
	if r.IsContiguous() {
		return r.View(), false
	}
	return r.Clone(), true
}

// gather copies src (described by r) into the row-major buffer dst.
func gather[T DType](dst, src []T, r *RawTensor) {
	n := r.NumElements()
	if n == 0 {
		return
	}
	if r.IsContiguous() {
		copy(dst[:n], src[r.offset:r.offset+n])
		return
	}

	// Non-contiguous handles have rank >= 1. Rows along axis 0 are
	// independent, so they are filled in parallel.
	shape, strides, offset := r.shape, r.stride, r.offset
	rows := shape[0]
	inner := n / rows
	parallel.For(rows, func(row int) {
		idx := make([]int, len(shape))
		idx[0] = row
		out := dst[row*inner : (row+1)*inner]
		for j := range out {
			out[j] = src[DotOffset(offset, strides, idx)]
			nextIndex(idx[1:], shape[1:])
		}
	}, copyParallelism())
}

// ReshapeCopy is Reshape with an opt-in fallback: when no view can express
// newShape, the tensor is cloned first and the clone is reshaped.
// Size mismatches still fail with ErrInvalidReshape.
func (r *RawTensor) ReshapeCopy(newShape ...int) (*RawTensor, error) {
	shape, err := inferShape(r.NumElements(), newShape)
	if err != nil {
		return nil, err
	}
	if strides, ok := viewStrides(r.shape, r.stride, shape); ok {
		return r.derive(shape, strides, r.offset), nil
	}
	return r.Clone().Reshape(shape...)
}

// AssignFrom copies src into r element by element through r's strides,
// mutating r's storage in place. Shapes must match exactly. If src aliases
// r's storage it is cloned first so overlapping regions copy correctly.
func (r *RawTensor) AssignFrom(src *RawTensor) error {
	if err := CheckSameShape("assign", r.shape, src.shape); err != nil {
		return err
	}
	if r.DType() != src.DType() {
		return fmt.Errorf("assign: %s into %s: %w", src.DType(), r.DType(), ErrDTypeMismatch)
	}
	if r.SharesStorage(src) {
		src = src.Clone()
	}

	switch r.DType() {
	case Float32:
		scatter(mustElements[float32](r.storage), mustElements[float32](src.storage), r, src)
	case Float64:
		scatter(mustElements[float64](r.storage), mustElements[float64](src.storage), r, src)
	case Int32:
		scatter(mustElements[int32](r.storage), mustElements[int32](src.storage), r, src)
	case Int64:
		scatter(mustElements[int64](r.storage), mustElements[int64](src.storage), r, src)
	case Uint8:
		scatter(mustElements[uint8](r.storage), mustElements[uint8](src.storage), r, src)
	case Bool:
		scatter(mustElements[bool](r.storage), mustElements[bool](src.storage), r, src)
	}
	return nil
}

func scatter[T DType](dstData, srcData []T, dst, src *RawTensor) {
	n := dst.NumElements()
	if n == 0 {
		return
	}
	if dst.IsContiguous() && src.IsContiguous() {
		copy(dstData[dst.offset:dst.offset+n], srcData[src.offset:src.offset+n])
		return
	}
	for idx, pos := range dst.Walk() {
		dstData[pos] = srcData[DotOffset(src.offset, src.stride, idx)]
	}
}

// SetSlice assigns src into the region of r selected by specs:
// the equivalent of r[specs] = src. The storage is never reallocated.
func (r *RawTensor) SetSlice(src *RawTensor, specs ...SliceSpec) error {
	view, err := r.Slice(specs...)
	if err != nil {
		return err
	}
	if err := view.AssignFrom(src); err != nil {
		return fmt.Errorf("set slice %v: %w", specs, err)
	}
	return nil
}

// Fill writes value into every element of r through its strides.
func Fill[T DType](r *RawTensor, value T) error {
	data, err := Elements[T](r.storage)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	for pos := range r.Positions() {
		data[pos] = value
	}
	return nil
}

// ToSlice copies the elements of r into a new slice in logical order.
func ToSlice[T DType](r *RawTensor) ([]T, error) {
	data, err := Elements[T](r.storage)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, r.NumElements())
	for pos := range r.Positions() {
		out = append(out, data[pos])
	}
	return out, nil
}
