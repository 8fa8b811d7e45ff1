package tensor

import (
	"fmt"
	"iter"
)

// Tensor is a typed handle over a RawTensor bound to a backend.
//
// Type Parameters:
//   - T: element type (must satisfy DType)
//   - B: backend used for linear algebra
//
// Tensors are cheap: views share storage with their source, and mutating a
// view mutates the source. Clone is the only operation that copies data.
//
// Example:
//
//	backend := cpu.New()
//	t, _ := tensor.FromNested[float32]([][]float32{{0, 1, 2}, {3, 4, 5}}, backend)
//	row, _ := t.Slice(tensor.Index(1)) // view of [3, 4, 5]
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps a RawTensor. Panics if raw does not hold elements of type T.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	if want := DataTypeOf[T](); raw.DType() != want {
		panic(fmt.Sprintf("tensor: raw dtype is %s, not %s", raw.DType(), want))
	}
	return &Tensor[T, B]{
		raw:     raw,
		backend: b,
	}
}

func (t *Tensor[T, B]) wrap(raw *RawTensor, err error) (*Tensor[T, B], error) {
	if err != nil {
		return nil, err
	}
	return &Tensor[T, B]{raw: raw, backend: t.backend}, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// Strides returns the tensor's strides in elements.
func (t *Tensor[T, B]) Strides() []int {
	return t.raw.Strides()
}

// Offset returns the storage position of index zero.
func (t *Tensor[T, B]) Offset() int {
	return t.raw.Offset()
}

// Rank returns the number of axes.
func (t *Tensor[T, B]) Rank() int {
	return t.raw.Rank()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T, B]) Device() Device {
	return t.raw.Device()
}

// Layout classifies the tensor's memory layout.
func (t *Tensor[T, B]) Layout() Layout {
	return t.raw.Layout()
}

// IsContiguous reports whether the tensor is row-major contiguous.
func (t *Tensor[T, B]) IsContiguous() bool {
	return t.raw.IsContiguous()
}

// Storage returns the shared buffer behind the tensor.
func (t *Tensor[T, B]) Storage() *Storage {
	return t.raw.Storage()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Get returns the element at the given multi-index.
func (t *Tensor[T, B]) Get(indices ...int) (T, error) {
	return GetAt[T](t.raw, indices...)
}

// SetAt writes value at the given multi-index into the shared storage.
func (t *Tensor[T, B]) SetAt(value T, indices ...int) error {
	return SetAt(t.raw, value, indices...)
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
//	value := t.At(1, 2) // Row 1, column 2
func (t *Tensor[T, B]) At(indices ...int) T {
	v, err := t.Get(indices...)
	if err != nil {
		panic(err)
	}
	return v
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	if err := t.SetAt(value, indices...); err != nil {
		panic(err)
	}
}

// Item returns the value of a single-element tensor.
// Panics if the tensor holds more or fewer than one element.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	for v := range t.Values() {
		return v
	}
	panic("unreachable")
}

// Values iterates over the elements in logical order. The sequence is lazy
// and restartable.
func (t *Tensor[T, B]) Values() iter.Seq[T] {
	data := mustElements[T](t.raw.storage)
	positions := t.raw.Positions()
	return func(yield func(T) bool) {
		for pos := range positions {
			if !yield(data[pos]) {
				return
			}
		}
	}
}

// ToSlice copies the elements into a new slice in logical order.
func (t *Tensor[T, B]) ToSlice() []T {
	out, err := ToSlice[T](t.raw)
	if err != nil {
		panic(err) // dtype checked in New
	}
	return out
}

// Contiguous returns the tensor's elements as a zero-copy slice when the
// tensor is row-major contiguous. Writes to the slice modify the tensor.
func (t *Tensor[T, B]) Contiguous() ([]T, bool) {
	if !t.raw.IsContiguous() {
		return nil, false
	}
	data := mustElements[T](t.raw.storage)
	off := t.raw.offset
	return data[off : off+t.NumElements()], true
}

// Slice returns a view selecting specs along the leading axes.
func (t *Tensor[T, B]) Slice(specs ...SliceSpec) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Slice(specs...))
}

// Transpose returns a view with permuted axes (reversed when none given).
func (t *Tensor[T, B]) Transpose(axes ...int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Transpose(axes...))
}

// T returns a view with the last two axes swapped.
func (t *Tensor[T, B]) T() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.T(), backend: t.backend}
}

// Reshape returns a view with a new shape, or ErrInvalidReshape.
func (t *Tensor[T, B]) Reshape(shape ...int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Reshape(shape...))
}

// ReshapeCopy reshapes, cloning first when no view can express the shape.
func (t *Tensor[T, B]) ReshapeCopy(shape ...int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.ReshapeCopy(shape...))
}

// Expand returns a broadcast view with zero strides on expanded axes.
func (t *Tensor[T, B]) Expand(shape ...int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Expand(shape...))
}

// Flip returns a view with one axis reversed.
func (t *Tensor[T, B]) Flip(axis int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Flip(axis))
}

// Squeeze returns a view without the given extent-1 axis.
func (t *Tensor[T, B]) Squeeze(axis int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Squeeze(axis))
}

// Unsqueeze returns a view with an extent-1 axis inserted.
func (t *Tensor[T, B]) Unsqueeze(axis int) (*Tensor[T, B], error) {
	return t.wrap(t.raw.Unsqueeze(axis))
}

// View returns another handle over the same storage and metadata.
func (t *Tensor[T, B]) View() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.View(), backend: t.backend}
}

// Clone returns a deep, row-major copy of the tensor.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return &Tensor[T, B]{raw: t.raw.Clone(), backend: t.backend}
}

// AssignFrom copies src into t through t's strides (t = src in place).
func (t *Tensor[T, B]) AssignFrom(src *Tensor[T, B]) error {
	return t.raw.AssignFrom(src.raw)
}

// SetSlice assigns src into the region selected by specs (t[specs] = src).
func (t *Tensor[T, B]) SetSlice(src *Tensor[T, B], specs ...SliceSpec) error {
	return t.raw.SetSlice(src.raw, specs...)
}

// Fill writes value into every element of the tensor.
func (t *Tensor[T, B]) Fill(value T) error {
	return Fill(t.raw, value)
}

// MatMul computes t @ other through the backend.
func (t *Tensor[T, B]) MatMul(other *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.MatMul(t.raw, other.raw))
}

// MatVec computes t @ v for a matrix t and a vector v through the backend.
func (t *Tensor[T, B]) MatVec(v *Tensor[T, B]) (*Tensor[T, B], error) {
	return t.wrap(t.backend.MatVec(t.raw, v.raw))
}

// String returns a human-readable representation of the tensor.
func (t *Tensor[T, B]) String() string {
	return fmt.Sprintf("Tensor[%s]%v %s on %s", t.DType(), t.raw.shape, t.Layout(), t.Device())
}
