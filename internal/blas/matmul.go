package blas

import (
	"fmt"

	gonum "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/strided/internal/tensor"
)

// MatMul computes (M, K) @ (K, N) -> (M, N) into a new row-major tensor.
func MatMul(a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	m, n, err := checkMatMul(a, b)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(tensor.Shape{m, n}, a.DType(), a.Device())
	if err != nil {
		return nil, fmt.Errorf("matmul: %w", err)
	}
	if err := gemm(a, b, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatMulInto computes a @ b into dst, which must have shape (M, N).
// dst may be any view. When dst is not row-major contiguous, or shares
// storage with an operand, the product goes to a scratch tensor that is then
// copied through dst's strides.
func MatMulInto(dst, a, b *tensor.RawTensor) error {
	m, n, err := checkMatMul(a, b)
	if err != nil {
		return err
	}
	if err := checkOutput("matmul", dst, a.DType(), tensor.Shape{m, n}); err != nil {
		return err
	}
	if dst.IsContiguous() && !dst.SharesStorage(a) && !dst.SharesStorage(b) {
		return gemm(a, b, dst)
	}
	scratch, err := MatMul(a, b)
	if err != nil {
		return err
	}
	return dst.AssignFrom(scratch)
}

// MatVec computes (M, K) @ (K) -> (M) into a new tensor.
func MatVec(a, v *tensor.RawTensor) (*tensor.RawTensor, error) {
	m, err := checkMatVec(a, v)
	if err != nil {
		return nil, err
	}
	out, err := tensor.NewRaw(tensor.Shape{m}, a.DType(), a.Device())
	if err != nil {
		return nil, fmt.Errorf("matvec: %w", err)
	}
	if err := gemv(a, v, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MatVecInto computes a @ v into dst, which must have shape (M).
func MatVecInto(dst, a, v *tensor.RawTensor) error {
	m, err := checkMatVec(a, v)
	if err != nil {
		return err
	}
	if err := checkOutput("matvec", dst, a.DType(), tensor.Shape{m}); err != nil {
		return err
	}
	if dst.IsContiguous() && !dst.SharesStorage(a) && !dst.SharesStorage(v) {
		return gemv(a, v, dst)
	}
	scratch, err := MatVec(a, v)
	if err != nil {
		return err
	}
	return dst.AssignFrom(scratch)
}

func checkOperands(op string, a, b *tensor.RawTensor) error {
	if a.DType() != b.DType() {
		return fmt.Errorf("%s: %s vs %s: %w", op, a.DType(), b.DType(), tensor.ErrDTypeMismatch)
	}
	if err := checkFloat(a.DType()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func checkMatMul(a, b *tensor.RawTensor) (int, int, error) {
	if err := checkOperands("matmul", a, b); err != nil {
		return 0, 0, err
	}
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 || as[1] != bs[0] {
		return 0, 0, fmt.Errorf("matmul: %v @ %v: %w", as, bs, tensor.ErrShapeMismatch)
	}
	return as[0], bs[1], nil
}

func checkMatVec(a, v *tensor.RawTensor) (int, error) {
	if err := checkOperands("matvec", a, v); err != nil {
		return 0, err
	}
	as, vs := a.Shape(), v.Shape()
	if len(as) != 2 || len(vs) != 1 || as[1] != vs[0] {
		return 0, fmt.Errorf("matvec: %v @ %v: %w", as, vs, tensor.ErrShapeMismatch)
	}
	return as[0], nil
}

func checkOutput(op string, dst *tensor.RawTensor, dt tensor.DataType, shape tensor.Shape) error {
	if dst.DType() != dt {
		return fmt.Errorf("%s: output %s, operands %s: %w", op, dst.DType(), dt, tensor.ErrDTypeMismatch)
	}
	return tensor.CheckSameShape(op+" output", dst.Shape(), shape)
}

// gemm writes a @ b into the row-major contiguous tensor c.
func gemm(a, b, c *tensor.RawTensor) error {
	if c.NumElements() == 0 {
		return nil
	}
	if a.Shape()[1] == 0 {
		return zero(c)
	}

	pa, err := Prepare(a)
	if err != nil {
		return fmt.Errorf("matmul: %w", err)
	}
	pb, err := Prepare(b)
	if err != nil {
		return fmt.Errorf("matmul: %w", err)
	}
	pc := output(c)

	switch c.DType() {
	case tensor.Float32:
		blas32.Gemm(pa.Trans, pb.Trans, 1, pa.general32(), pb.general32(), 0, pc.general32())
	case tensor.Float64:
		blas64.Gemm(pa.Trans, pb.Trans, 1, pa.general64(), pb.general64(), 0, pc.general64())
	}
	return nil
}

// gemv writes a @ v into the contiguous vector y.
func gemv(a, v, y *tensor.RawTensor) error {
	if y.NumElements() == 0 {
		return nil
	}
	if v.NumElements() == 0 {
		return zero(y)
	}

	pa, err := Prepare(a)
	if err != nil {
		return fmt.Errorf("matvec: %w", err)
	}
	pv, err := PrepareVector(v)
	if err != nil {
		return fmt.Errorf("matvec: %w", err)
	}
	py := VectorOperand{N: y.NumElements(), Inc: 1, Offset: y.Offset(), Storage: y.Storage(), source: y}

	switch y.DType() {
	case tensor.Float32:
		blas32.Gemv(pa.Trans, 1, pa.general32(), pv.vector32(), 0, py.vector32())
	case tensor.Float64:
		blas64.Gemv(pa.Trans, 1, pa.general64(), pv.vector64(), 0, py.vector64())
	}
	return nil
}

// output describes a row-major contiguous result matrix.
func output(c *tensor.RawTensor) Operand {
	shape := c.Shape()
	return Operand{
		Rows:    shape[0],
		Cols:    shape[1],
		LD:      max(1, shape[1]),
		Trans:   gonum.NoTrans,
		Offset:  c.Offset(),
		Storage: c.Storage(),
		source:  c,
	}
}

func zero(c *tensor.RawTensor) error {
	if c.DType() == tensor.Float32 {
		return tensor.Fill[float32](c, 0)
	}
	return tensor.Fill[float64](c, 0)
}
