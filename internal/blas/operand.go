// Package blas adapts strided tensors to native BLAS routines.
//
// A BLAS routine sees a matrix as a pointer, a leading dimension and a
// transpose flag. Row-major contiguous tensors map onto that directly,
// column-major ones map onto the transposed row-major matrix, and any other
// layout is materialized into a scratch row-major copy first. Scratch copies
// are private to the call and never written back to the caller.
package blas

import (
	"fmt"
	"unsafe"

	gonum "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/strided/internal/tensor"
)

// Operand is a matrix ready for a BLAS call.
type Operand struct {
	Rows, Cols int             // logical shape of the matrix
	LD         int             // leading dimension of the stored row-major matrix
	Trans      gonum.Transpose // NoTrans for row-major, Trans for column-major sources
	Offset     int             // storage position of element (0, 0)
	Storage    *tensor.Storage
	Scratch    bool // true when the data is a private materialized copy

	source *tensor.RawTensor
}

// Prepare classifies a rank-2 tensor and returns the operand describing it,
// materializing a row-major copy when the layout is neither row- nor
// column-major contiguous.
func Prepare(x *tensor.RawTensor) (Operand, error) {
	if x.Rank() != 2 {
		return Operand{}, fmt.Errorf("blas: matrix operand must be rank 2, got %v: %w", x.Shape(), tensor.ErrShapeMismatch)
	}
	if err := checkFloat(x.DType()); err != nil {
		return Operand{}, err
	}

	shape := x.Shape()
	rows, cols := shape[0], shape[1]
	op := Operand{Rows: rows, Cols: cols}

	switch x.Layout() {
	case tensor.RowMajor:
		op.Trans = gonum.NoTrans
		op.LD = max(1, cols)
	case tensor.ColMajor:
		op.Trans = gonum.Trans
		op.LD = max(1, rows)
	default:
		x = x.Clone()
		op.Trans = gonum.NoTrans
		op.LD = max(1, cols)
		op.Scratch = true
	}
	op.Offset = x.Offset()
	op.Storage = x.Storage()
	op.source = x
	return op, nil
}

// stored returns the shape of the row-major matrix actually held in memory.
func (o Operand) stored() (int, int) {
	if o.Trans == gonum.NoTrans {
		return o.Rows, o.Cols
	}
	return o.Cols, o.Rows
}

// span returns the number of storage elements the stored matrix covers.
func (o Operand) span() int {
	r, c := o.stored()
	if r == 0 || c == 0 {
		return 0
	}
	return o.LD*(r-1) + c
}

// Ptr returns the raw pointer to element (0, 0) for native callers, or nil
// for an empty matrix.
func (o Operand) Ptr() unsafe.Pointer {
	if o.span() == 0 {
		return nil
	}
	return o.Storage.PtrAt(o.Offset)
}

// Source returns the tensor the operand reads from: the caller's tensor,
// or the scratch copy when Scratch is set.
func (o Operand) Source() *tensor.RawTensor {
	return o.source
}

func (o Operand) general32() blas32.General {
	data, err := tensor.Elements[float32](o.Storage)
	if err != nil {
		panic(err) // dtype checked in Prepare
	}
	r, c := o.stored()
	return blas32.General{Rows: r, Cols: c, Stride: o.LD, Data: data[o.Offset : o.Offset+o.span()]}
}

func (o Operand) general64() blas64.General {
	data, err := tensor.Elements[float64](o.Storage)
	if err != nil {
		panic(err)
	}
	r, c := o.stored()
	return blas64.General{Rows: r, Cols: c, Stride: o.LD, Data: data[o.Offset : o.Offset+o.span()]}
}

// VectorOperand is a vector ready for a BLAS call.
type VectorOperand struct {
	N       int
	Inc     int
	Offset  int
	Storage *tensor.Storage
	Scratch bool

	source *tensor.RawTensor
}

// PrepareVector returns the operand for a rank-1 tensor, materializing a
// copy when the vector is not contiguous.
func PrepareVector(v *tensor.RawTensor) (VectorOperand, error) {
	if v.Rank() != 1 {
		return VectorOperand{}, fmt.Errorf("blas: vector operand must be rank 1, got %v: %w", v.Shape(), tensor.ErrShapeMismatch)
	}
	if err := checkFloat(v.DType()); err != nil {
		return VectorOperand{}, err
	}
	op := VectorOperand{N: v.NumElements(), Inc: 1}
	if !v.IsContiguous() {
		v = v.Clone()
		op.Scratch = true
	}
	op.Offset = v.Offset()
	op.Storage = v.Storage()
	op.source = v
	return op, nil
}

// Ptr returns the raw pointer to element 0, or nil for an empty vector.
func (o VectorOperand) Ptr() unsafe.Pointer {
	if o.N == 0 {
		return nil
	}
	return o.Storage.PtrAt(o.Offset)
}

// Source returns the tensor the operand reads from.
func (o VectorOperand) Source() *tensor.RawTensor {
	return o.source
}

func (o VectorOperand) vector32() blas32.Vector {
	data, err := tensor.Elements[float32](o.Storage)
	if err != nil {
		panic(err)
	}
	return blas32.Vector{N: o.N, Inc: o.Inc, Data: data[o.Offset : o.Offset+o.N]}
}

func (o VectorOperand) vector64() blas64.Vector {
	data, err := tensor.Elements[float64](o.Storage)
	if err != nil {
		panic(err)
	}
	return blas64.Vector{N: o.N, Inc: o.Inc, Data: data[o.Offset : o.Offset+o.N]}
}

// checkFloat rejects element types native linear algebra cannot take.
func checkFloat(dt tensor.DataType) error {
	if !dt.IsFloat() {
		return fmt.Errorf("blas: %s operands are not supported, convert to float32 or float64: %w",
			dt, tensor.ErrUnsupportedElementType)
	}
	return nil
}
