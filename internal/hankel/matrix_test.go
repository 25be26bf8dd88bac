package hankel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/hankel/internal/tensor"
)

func TestMatrix_Dims(t *testing.T) {
	src := tensor.Arange[float32](tensor.Shape{2, 3, 5, 4, 2, 3})
	v, err := NewView(src, tensor.Shape{2, 3}, tensor.Shape{2})
	require.NoError(t, err)

	// Rows: 2·3 channels × 2 offsets. Columns: 4 positions × 2·3 batch.
	r, c := NewMatrix(v).Dims()
	assert.Equal(t, 12, r)
	assert.Equal(t, 24, c)
}

func TestMatrix_MatchesDense(t *testing.T) {
	for i, tc := range viewCases {
		t.Run(tc.name, func(t *testing.T) {
			src := tensor.Rand[float32](tc.source, newRNG(uint64(2000+i)))
			v, err := NewView(src, tc.channel, tc.kernel)
			require.NoError(t, err)

			m := NewMatrix(v)
			d := Dense(v, eagerOpt)

			r, c := m.Dims()
			dr, dc := d.Dims()
			require.Equal(t, r, dr)
			require.Equal(t, c, dc)
			require.Equal(t, v.Shape().NumElements(), r*c)

			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					require.Equal(t, d.At(i, j), m.At(i, j), "At(%d, %d)", i, j)
				}
			}

			// Row-major order of the matrix is row-major order of the view.
			assert.Equal(t, toFloats(v.Materialize()), d.RawMatrix().Data)
		})
	}
}

func TestMatrix_Transpose(t *testing.T) {
	src := tensor.Arange[int32](tensor.Shape{2, 5, 2})
	v, err := NewView(src, tensor.Shape{2}, tensor.Shape{3})
	require.NoError(t, err)

	m := NewMatrix(v)
	tr := m.T()
	r, c := m.Dims()
	tr2, tc2 := tr.Dims()
	assert.Equal(t, c, tr2)
	assert.Equal(t, r, tc2)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, m.At(i, j), tr.At(j, i))
		}
	}
}

func TestMatrix_AtPanics(t *testing.T) {
	src := tensor.Arange[float64](tensor.Shape{4})
	v, err := NewView(src, nil, tensor.Shape{2})
	require.NoError(t, err)
	m := NewMatrix(v) // 2 × 3

	assert.PanicsWithValue(t, mat.ErrRowAccess, func() { m.At(2, 0) })
	assert.PanicsWithValue(t, mat.ErrRowAccess, func() { m.At(-1, 0) })
	assert.PanicsWithValue(t, mat.ErrColAccess, func() { m.At(0, 3) })
	assert.Equal(t, 3.0, m.At(1, 2))
}

// Forward is Wᵀ·X with W flattened to (C·J, M) and X the window matrix.
func TestMatrix_ForwardIsMatMul(t *testing.T) {
	for i, tc := range rankCases {
		t.Run(tc.name, func(t *testing.T) {
			rng := newRNG(uint64(2100 + i))
			weight := tensor.Rand[float64](tc.weightShape(), rng)
			visible := tensor.Rand[float64](tc.visibleShape(), rng)

			v, err := NewView(visible, tensor.Shape{tc.channels}, tc.kernel)
			require.NoError(t, err)

			x := NewMatrix(v)
			rows, _ := x.Dims()
			w := mat.NewDense(rows, tc.units, weight.Data())

			var got mat.Dense
			got.Mul(w.T(), x)

			hidden, err := ConvForward(weight, visible)
			require.NoError(t, err)
			assert.True(t, floats.EqualApprox(got.RawMatrix().Data, hidden.Data(), 1e-12))
		})
	}
}
