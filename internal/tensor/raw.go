package tensor

import (
	"fmt"
	"runtime"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the untyped tensor handle: a shape, strides and offset over a
// shared Storage. Views are cheap metadata copies that reference the same
// Storage; Clone is the only operation that allocates a new one.
//
// Invariant: for every in-bounds multi-index i,
// offset + sum(i[k]*stride[k]) addresses an element of the storage.
type RawTensor struct {
	storage *Storage
	shape   Shape
	stride  []int
	offset  int
	device  Device
}

// newHandle wraps metadata around s and registers the storage reference.
// shape and stride are owned by the returned handle.
func newHandle(s *Storage, shape Shape, stride []int, offset int, device Device) *RawTensor {
	r := &RawTensor{
		storage: s,
		shape:   shape,
		stride:  stride,
		offset:  offset,
		device:  device,
	}
	s.retain()
	runtime.AddCleanup(r, func(s *Storage) { s.release() }, s)
	return r
}

// NewRaw allocates a zeroed row-major tensor with the given shape and type.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	storage, err := NewStorage(dtype, shape.NumElements())
	if err != nil {
		return nil, err
	}
	return newHandle(storage, shape.Clone(), shape.ComputeStrides(), 0, device), nil
}

// NewRawColMajor allocates a zeroed column-major tensor.
func NewRawColMajor(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	storage, err := NewStorage(dtype, shape.NumElements())
	if err != nil {
		return nil, err
	}
	return newHandle(storage, shape.Clone(), shape.ColMajorStrides(), 0, device), nil
}

// NewRawStrided creates a handle with explicit strides and offset over an
// existing storage. It fails with ErrIndexOutOfBounds if any in-bounds index
// would address memory outside the storage.
func NewRawStrided(storage *Storage, shape Shape, strides []int, offset int, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(strides) != len(shape) {
		return nil, fmt.Errorf("strided: %d strides for rank %d: %w", len(strides), len(shape), ErrShapeMismatch)
	}
	if err := checkExtent(storage.Len(), shape, strides, offset); err != nil {
		return nil, err
	}
	return newHandle(storage, shape.Clone(), append([]int(nil), strides...), offset, device), nil
}

// checkExtent verifies that every position reachable by shape/strides from
// offset lies in [0, n).
func checkExtent(n int, shape Shape, strides []int, offset int) error {
	if offset < 0 {
		return fmt.Errorf("strided: negative offset %d: %w", offset, ErrIndexOutOfBounds)
	}
	if shape.NumElements() == 0 {
		return nil
	}
	lo, hi := offset, offset
	for k, ext := range shape {
		span := (ext - 1) * strides[k]
		if span > 0 {
			hi += span
		} else {
			lo += span
		}
	}
	if lo < 0 || hi >= n {
		return fmt.Errorf("strided: positions [%d, %d] outside storage of %d elements: %w",
			lo, hi, n, ErrIndexOutOfBounds)
	}
	return nil
}

// Shape returns a copy of the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape.Clone()
}

// Strides returns a copy of the tensor's strides, in elements.
func (r *RawTensor) Strides() []int {
	return append([]int(nil), r.stride...)
}

// Offset returns the storage position of index zero.
func (r *RawTensor) Offset() int {
	return r.offset
}

// Rank returns the number of axes.
func (r *RawTensor) Rank() int {
	return len(r.shape)
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.storage.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// Storage returns the shared buffer behind this handle.
func (r *RawTensor) Storage() *Storage {
	return r.storage
}

// Layout classifies the handle's current shape and strides.
func (r *RawTensor) Layout() Layout {
	return Classify(r.shape, r.stride)
}

// IsContiguous reports whether the handle is row-major contiguous.
func (r *RawTensor) IsContiguous() bool {
	return IsRowMajor(r.shape, r.stride)
}

// SharesStorage reports whether r and other alias the same buffer.
func (r *RawTensor) SharesStorage(other *RawTensor) bool {
	return r.storage == other.storage
}

// IsUnique returns true if this handle is the only reference to its storage.
func (r *RawTensor) IsUnique() bool {
	return r.storage.IsUnique()
}

// View returns a new handle with identical metadata over the same storage.
func (r *RawTensor) View() *RawTensor {
	return r.derive(r.shape.Clone(), r.Strides(), r.offset)
}

func (r *RawTensor) derive(shape Shape, stride []int, offset int) *RawTensor {
	return newHandle(r.storage, shape, stride, offset, r.device)
}

// String returns a short description of the handle.
func (r *RawTensor) String() string {
	return fmt.Sprintf("RawTensor[%s]%v strides=%v offset=%d on %s",
		r.DType(), r.shape, r.stride, r.offset, r.device)
}
