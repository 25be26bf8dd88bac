package hankel

import (
	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/hankel/internal/tensor"
)

// Matrix presents a View as a gonum matrix without materializing it.
//
// Rows run over the flattened (channel, offset) pairs and columns over the
// flattened (position, batch) pairs, so for a flattened weight W of shape
// (C·J, M) the forward contraction is Wᵀ·X reshaped to (M, K..., B).
type Matrix[T tensor.DType] struct {
	view *View[T]
	flat Geometry
	src  frame
	rows int
	cols int
}

// NewMatrix wraps v as a mat.Matrix.
func NewMatrix[T tensor.DType](v *View[T]) *Matrix[T] {
	flat := v.geo.Flat()
	return &Matrix[T]{
		view: v,
		flat: flat,
		src:  newFrame(flat.SourceShape()),
		rows: flat.Channel[0] * flat.Kernel.NumElements(),
		cols: flat.Output.NumElements() * flat.Batch[0],
	}
}

// Dims returns the dimensions of the matrix.
func (m *Matrix[T]) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the element at row i and column j.
// It panics if i or j are out of bounds for the matrix.
func (m *Matrix[T]) At(i, j int) float64 {
	if uint(i) >= uint(m.rows) {
		panic(mat.ErrRowAccess)
	}
	if uint(j) >= uint(m.cols) {
		panic(mat.ErrColAccess)
	}

	nJ, b := m.flat.Kernel.NumElements(), m.src.trail
	c, jFlat := i/nJ, i%nJ
	kFlat, bi := j/b, j%b

	off := c*m.src.block + m.src.offsetOf(m.flat.Kernel, jFlat) + m.src.offsetOf(m.flat.Output, kFlat) + bi
	return toFloat64(m.view.src.Data()[off])
}

// T returns the transpose of the matrix without copying.
func (m *Matrix[T]) T() mat.Matrix {
	return mat.Transpose{Matrix: m}
}

// Dense materializes v into a gonum dense matrix with the layout of Matrix.
func Dense[T tensor.DType](v *View[T], opts ...Option) *mat.Dense {
	out := v.Materialize(opts...)
	data := make([]float64, out.NumElements())
	for i, x := range out.Data() {
		data[i] = toFloat64(x)
	}
	r, c := NewMatrix(v).Dims()
	return mat.NewDense(r, c, data)
}

func toFloat64[T tensor.DType](v T) float64 {
	switch x := any(v).(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case float16.Float16:
		return float64(x.Float32())
	default:
		panic("unsupported type")
	}
}
