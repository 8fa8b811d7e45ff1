package tensor

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

var storageIDs atomic.Uint64

// Storage is the linear, typed, fixed-length memory behind one or more
// tensor handles. It is never resized. Every RawTensor that references a
// Storage holds one reference; the count drops when the handle becomes
// unreachable.
//
// Storage provides no locking. Concurrent reads through any number of
// handles are safe; concurrent writes through aliasing views are the
// caller's responsibility.
type Storage struct {
	data  []byte
	dtype DataType
	n     int
	id    uint64
	refs  atomic.Int32
}

// NewStorage allocates a zeroed buffer of exactly n elements of dtype.
func NewStorage(dtype DataType, n int) (*Storage, error) {
	if n < 0 {
		return nil, fmt.Errorf("storage: negative element count %d", n)
	}
	return &Storage{
		data:  allocBytes(dtype, n),
		dtype: dtype,
		n:     n,
		id:    storageIDs.Add(1),
	}, nil
}

// allocBytes allocates through a typed slice so the buffer is aligned for dtype.
func allocBytes(dtype DataType, n int) []byte {
	if n == 0 {
		return []byte{}
	}
	var p unsafe.Pointer
	switch dtype {
	case Float32:
		p = unsafe.Pointer(unsafe.SliceData(make([]float32, n)))
	case Float64:
		p = unsafe.Pointer(unsafe.SliceData(make([]float64, n)))
	case Int32:
		p = unsafe.Pointer(unsafe.SliceData(make([]int32, n)))
	case Int64:
		p = unsafe.Pointer(unsafe.SliceData(make([]int64, n)))
	case Uint8, Bool:
		return make([]byte, n)
	default:
		panic(fmt.Sprintf("storage: unknown data type %d", dtype))
	}
	//nolint:gosec // reinterpreting a freshly allocated typed buffer as bytes
	return unsafe.Slice((*byte)(p), n*dtype.Size())
}

// Len returns the number of elements.
func (s *Storage) Len() int {
	return s.n
}

// DType returns the element type.
func (s *Storage) DType() DataType {
	return s.dtype
}

// ID returns an identifier unique to this allocation.
func (s *Storage) ID() uint64 {
	return s.id
}

// Bytes returns the raw bytes of the whole buffer (zero-copy).
func (s *Storage) Bytes() []byte {
	return s.data
}

// Ptr returns a pointer to element 0, or nil for an empty buffer.
// Pointer arithmetic past element 0 is only meaningful for callers that
// have checked the layout of the tensor they derived the position from.
func (s *Storage) Ptr() unsafe.Pointer {
	if s.n == 0 {
		return nil
	}
	return unsafe.Pointer(unsafe.SliceData(s.data))
}

// PtrAt returns a pointer to element pos. Panics if pos is outside the buffer.
func (s *Storage) PtrAt(pos int) unsafe.Pointer {
	if pos < 0 || pos >= s.n {
		panic(fmt.Sprintf("storage: position %d out of range [0, %d)", pos, s.n))
	}
	return unsafe.Add(s.Ptr(), pos*s.dtype.Size())
}

// Refs returns the number of live handles referencing this storage.
func (s *Storage) Refs() int {
	return int(s.refs.Load())
}

// IsUnique reports whether at most one handle references the storage.
func (s *Storage) IsUnique() bool {
	return s.refs.Load() <= 1
}

func (s *Storage) retain() {
	s.refs.Add(1)
}

func (s *Storage) release() {
	s.refs.Add(-1)
}

// Elements returns the whole buffer as a typed slice (zero-copy).
func Elements[T DType](s *Storage) ([]T, error) {
	if want := DataTypeOf[T](); s.dtype != want {
		return nil, fmt.Errorf("storage holds %s, not %s: %w", s.dtype, want, ErrDTypeMismatch)
	}
	if s.n == 0 {
		return []T{}, nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, length fixed at allocation
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(s.data))), s.n), nil
}

// mustElements is Elements for callers that already checked the dtype.
func mustElements[T DType](s *Storage) []T {
	data, err := Elements[T](s)
	if err != nil {
		panic(err)
	}
	return data
}
