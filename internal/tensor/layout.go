package tensor

// Layout classifies how a (shape, strides) pair maps onto memory.
type Layout int

// Layout classes.
const (
	NonContiguous Layout = iota
	RowMajor
	ColMajor
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "column-major"
	default:
		return "non-contiguous"
	}
}

// Classify derives the layout of shape/strides. It is a pure function and
// is recomputed on every call. When a pair is both row- and column-major
// (rank <= 1, or a single non-degenerate axis) RowMajor is reported.
func Classify(shape Shape, strides []int) Layout {
	switch {
	case IsRowMajor(shape, strides):
		return RowMajor
	case IsColMajor(shape, strides):
		return ColMajor
	default:
		return NonContiguous
	}
}

// IsRowMajor reports whether the last axis has unit stride and each earlier
// axis steps over exactly the elements of the axes after it. Axes of extent
// 1 impose no constraint; any zero extent makes the layout vacuously
// contiguous.
func IsRowMajor(shape Shape, strides []int) bool {
	if len(shape) != len(strides) {
		return false
	}
	if shape.NumElements() == 0 {
		return true
	}
	expected := 1
	for k := len(shape) - 1; k >= 0; k-- {
		if shape[k] == 1 {
			continue
		}
		if strides[k] != expected {
			return false
		}
		expected *= shape[k]
	}
	return true
}

// IsColMajor is the mirror of IsRowMajor, scanning first to last.
func IsColMajor(shape Shape, strides []int) bool {
	if len(shape) != len(strides) {
		return false
	}
	if shape.NumElements() == 0 {
		return true
	}
	expected := 1
	for k := 0; k < len(shape); k++ {
		if shape[k] == 1 {
			continue
		}
		if strides[k] != expected {
			return false
		}
		expected *= shape[k]
	}
	return true
}
