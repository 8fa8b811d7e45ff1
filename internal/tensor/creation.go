package tensor

import (
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
)

// Number is the subset of DType with arithmetic.
type Number interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8
}

// Empty allocates a row-major tensor. Go memory is always zeroed, so Empty
// and Zeros differ only in intent.
// Panics if shape has a negative extent.
func Empty[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		panic(err)
	}
	return New[T, B](raw, b)
}

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Empty[T, B](shape, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Empty[T, B](shape, b)
	data, _ := t.Contiguous()
	for i := range data {
		data[i] = value
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T Number, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, T(1), b)
}

// FromSlice creates a row-major tensor from flat data.
// The slice is copied into the tensor's memory.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("from slice: shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(data), ErrShapeMismatch)
	}

	t := Empty[T, B](shape, b)
	dst, _ := t.Contiguous()
	copy(dst, data)
	return t, nil
}

// FromNested creates a tensor from nested slices (or arrays) of T, e.g.
// [][]float32{{0, 1}, {2, 3}}. A bare T yields a rank-0 tensor. Ragged input
// fails with ErrShapeMismatch; any other leaf type fails with
// ErrUnsupportedElementType.
func FromNested[T DType, B Backend](data any, b B) (*Tensor[T, B], error) {
	v := reflect.ValueOf(data)
	if !v.IsValid() {
		return nil, fmt.Errorf("from nested: nil data: %w", ErrUnsupportedElementType)
	}

	rank := 0
	leaf := v.Type()
	for leaf.Kind() == reflect.Slice || leaf.Kind() == reflect.Array {
		leaf = leaf.Elem()
		rank++
	}
	if leaf != reflect.TypeFor[T]() {
		return nil, fmt.Errorf("from nested: leaf type %s, want %s: %w",
			leaf, reflect.TypeFor[T](), ErrUnsupportedElementType)
	}

	shape := make(Shape, rank)
	cur := v
	for d := 0; d < rank; d++ {
		shape[d] = cur.Len()
		if cur.Len() == 0 {
			break
		}
		cur = cur.Index(0)
	}

	flat := make([]T, 0, shape.NumElements())
	var walk func(v reflect.Value, depth int) error
	walk = func(v reflect.Value, depth int) error {
		if depth == rank {
			flat = append(flat, v.Interface().(T))
			return nil
		}
		if v.Len() != shape[depth] {
			return fmt.Errorf("from nested: ragged axis %d: length %d, want %d: %w",
				depth, v.Len(), shape[depth], ErrShapeMismatch)
		}
		for i := 0; i < v.Len(); i++ {
			if err := walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(v, 0); err != nil {
		return nil, err
	}
	return FromSlice[T, B](flat, shape, b)
}

// RandUniform fills a new tensor with values drawn uniformly from
// [low, high) using rng. Passing the generator explicitly keeps results
// reproducible without process-wide state.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	w, _ := tensor.RandUniform[float32](Shape{64, 64}, -0.1, 0.1, rng, backend)
func RandUniform[T Number, B Backend](shape Shape, low, high T, rng *rand.Rand, b B) (*Tensor[T, B], error) {
	if high < low {
		return nil, fmt.Errorf("rand uniform: high %v < low %v", high, low)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("rand uniform: %w", err)
	}

	t := Empty[T, B](shape, b)
	data, _ := t.Contiguous()
	span := float64(high) - float64(low)
	isFloat := DataTypeOf[T]().IsFloat()
	for i := range data {
		switch {
		case isFloat:
			data[i] = T(float64(low) + span*rng.Float64())
		case span == 0:
			data[i] = low
		default:
			data[i] = T(int64(low) + rng.Int64N(int64(span)))
		}
	}
	return t, nil
}

// Arange creates a 1D tensor with values start, start+1, ... below end.
//
// Example:
//
//	t := tensor.Arange[int32](0, 9, backend) // [0, 1, ..., 8]
func Arange[T Number, B Backend](start, end T, b B) *Tensor[T, B] {
	n := 0
	if end > start {
		n = int(math.Ceil(float64(end) - float64(start)))
	}
	t := Empty[T, B](Shape{n}, b)
	data, _ := t.Contiguous()
	for i := range data {
		data[i] = start + T(i)
	}
	return t
}
