package tensor

import (
	"runtime"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageZeroed(t *testing.T) {
	s, err := NewStorage(Float32, 6)
	require.NoError(t, err)

	assert.Equal(t, 6, s.Len())
	assert.Equal(t, Float32, s.DType())
	assert.Len(t, s.Bytes(), 24)

	data, err := Elements[float32](s)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, data)
}

func TestNewStorageNegative(t *testing.T) {
	_, err := NewStorage(Float64, -1)
	assert.Error(t, err)
}

func TestStorageElementsDTypeMismatch(t *testing.T) {
	s, err := NewStorage(Int32, 4)
	require.NoError(t, err)

	_, err = Elements[float32](s)
	require.ErrorIs(t, err, ErrDTypeMismatch)
}

func TestStorageElementsZeroCopy(t *testing.T) {
	s, err := NewStorage(Int64, 3)
	require.NoError(t, err)

	a, err := Elements[int64](s)
	require.NoError(t, err)
	a[1] = 42

	b, err := Elements[int64](s)
	require.NoError(t, err)
	assert.Equal(t, int64(42), b[1])
}

func TestStorageIDsUnique(t *testing.T) {
	a, err := NewStorage(Uint8, 1)
	require.NoError(t, err)
	b, err := NewStorage(Uint8, 1)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID(), b.ID())
}

func TestStoragePtr(t *testing.T) {
	s, err := NewStorage(Float64, 4)
	require.NoError(t, err)
	data := mustElements[float64](s)
	data[2] = 7.5

	p := s.PtrAt(2)
	assert.Equal(t, 7.5, *(*float64)(p))
	assert.Equal(t, uintptr(16), uintptr(p)-uintptr(s.Ptr()))

	assert.Panics(t, func() { s.PtrAt(4) })

	empty, err := NewStorage(Float64, 0)
	require.NoError(t, err)
	assert.Nil(t, empty.Ptr())
}

func TestStorageAlignment(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64} {
		s, err := NewStorage(dt, 3)
		require.NoError(t, err)
		assert.Zero(t, uintptr(s.Ptr())%uintptr(dt.Size()), dt.String())
	}
	var f float64
	assert.Equal(t, uintptr(8), unsafe.Alignof(f))
}

func TestStorageRefsTrackHandles(t *testing.T) {
	raw := arangeRaw(t, 2, 3)
	s := raw.Storage()
	assert.Equal(t, 1, s.Refs())
	assert.True(t, raw.IsUnique())

	view := raw.T()
	assert.Equal(t, 2, s.Refs())
	assert.False(t, raw.IsUnique())

	clone := raw.Clone()
	assert.Equal(t, 2, s.Refs(), "clone allocates its own storage")
	assert.Equal(t, 1, clone.Storage().Refs())

	runtime.KeepAlive(view)
	runtime.KeepAlive(raw)
}
