package hankel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/hankel/internal/tensor"
)

// viewCase is a source shape split into channel, spatial and batch axes.
type viewCase struct {
	name    string
	source  tensor.Shape
	channel tensor.Shape
	kernel  tensor.Shape
}

var viewCases = []viewCase{
	{"1d bare", tensor.Shape{6}, nil, tensor.Shape{3}},
	{"1d channel batch", tensor.Shape{2, 5, 3}, tensor.Shape{2}, tensor.Shape{2}},
	{"2d", tensor.Shape{2, 4, 5, 2}, tensor.Shape{2}, tensor.Shape{2, 3}},
	{"2d grouped channel and batch", tensor.Shape{2, 3, 4, 4, 2, 2}, tensor.Shape{2, 3}, tensor.Shape{3, 1}},
	{"3d no batch", tensor.Shape{1, 3, 4, 3}, tensor.Shape{1}, tensor.Shape{2, 2, 3}},
	{"4d", tensor.Shape{2, 3, 2, 3, 2, 2}, tensor.Shape{2}, tensor.Shape{2, 2, 1, 2}},
	{"window equals input", tensor.Shape{2, 4, 3}, tensor.Shape{2}, tensor.Shape{4}},
}

func TestView_ShapeAndRank(t *testing.T) {
	for _, tc := range viewCases {
		t.Run(tc.name, func(t *testing.T) {
			src := tensor.Arange[float32](tc.source)
			v, err := NewView(src, tc.channel, tc.kernel)
			require.NoError(t, err)

			nc, nk := len(tc.channel), len(tc.kernel)
			output := make(tensor.Shape, nk)
			for d := range output {
				output[d] = tc.source[nc+d] - tc.kernel[d] + 1
			}
			want := tensor.Concat(tc.channel, tc.kernel, output, tc.source[nc+nk:])

			assert.Equal(t, want, v.Shape())
			assert.Equal(t, src.Rank()+nk, v.Rank())
			assert.Same(t, src, v.Source())
		})
	}
}

func TestView_IndexLaw(t *testing.T) {
	for _, tc := range viewCases {
		t.Run(tc.name, func(t *testing.T) {
			src := tensor.Arange[int64](tc.source)
			v, err := NewView(src, tc.channel, tc.kernel)
			require.NoError(t, err)

			nc, nk := len(tc.channel), len(tc.kernel)
			shape := v.Shape()
			idx := make([]int, len(shape))

			for flat := 0; flat < shape.NumElements(); flat++ {
				shape.Unravel(flat, idx)

				// Build the source index by hand: (c, j+k, b).
				srcIdx := append([]int(nil), idx[:nc]...)
				for d := 0; d < nk; d++ {
					srcIdx = append(srcIdx, idx[nc+d]+idx[nc+nk+d])
				}
				srcIdx = append(srcIdx, idx[nc+2*nk:]...)

				got, err := v.Get(idx...)
				require.NoError(t, err)
				require.Equal(t, src.At(srcIdx...), got, "view index %v", idx)
			}
		})
	}
}

func TestView_ConcreteValues(t *testing.T) {
	// Source [10 11 12 13], window 2 → [[10 11 12] [11 12 13]].
	src, err := tensor.FromSlice([]int32{10, 11, 12, 13}, tensor.Shape{4})
	require.NoError(t, err)

	v, err := NewView(src, nil, tensor.Shape{2})
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{2, 3}, v.Shape())

	want := [][]int32{{10, 11, 12}, {11, 12, 13}}
	for j := range want {
		for k := range want[j] {
			assert.Equal(t, want[j][k], v.At(j, k), "At(%d, %d)", j, k)
		}
	}
}

func TestView_GetOutOfRange(t *testing.T) {
	src := tensor.Arange[float64](tensor.Shape{2, 5, 3})
	v, err := NewView(src, tensor.Shape{2}, tensor.Shape{2})
	require.NoError(t, err)
	// View shape (2, 2, 4, 3).

	for _, idx := range [][]int{
		{0, 0, 4, 0}, // position past the output size, still inside the source
		{0, 2, 0, 0},
		{2, 0, 0, 0},
		{0, 0, 0, 3},
		{-1, 0, 0, 0},
		{0, 0, 0},
	} {
		_, err := v.Get(idx...)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %v", idx)
	}
}

func TestView_AtPanics(t *testing.T) {
	src := tensor.Arange[float32](tensor.Shape{3})
	v, err := NewView(src, nil, tensor.Shape{2})
	require.NoError(t, err)

	assert.Panics(t, func() { v.At(0, 2) })
	assert.NotPanics(t, func() { v.At(1, 1) })
}

func TestView_NoCopy(t *testing.T) {
	src := tensor.Zeros[float32](tensor.Shape{1, 4, 1})
	v, err := NewView(src, tensor.Shape{1}, tensor.Shape{2})
	require.NoError(t, err)

	src.Set(7, 0, 2, 0)

	// Source position 2 is (j=0, k=2) and (j=1, k=1).
	assert.Equal(t, float32(7), v.At(0, 0, 2, 0))
	assert.Equal(t, float32(7), v.At(0, 1, 1, 0))
	assert.Equal(t, float32(0), v.At(0, 1, 2, 0))
}

func TestNewView_Errors(t *testing.T) {
	src := tensor.Arange[float32](tensor.Shape{2, 4, 3})

	_, err := NewView(src, tensor.Shape{2}, tensor.Shape{5})
	assert.ErrorIs(t, err, ErrInvalidWindowSize)

	_, err = NewView(src, tensor.Shape{3}, tensor.Shape{2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = NewView(src, tensor.Shape{2, 4, 3}, tensor.Shape{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestEqual(t *testing.T) {
	src := tensor.Arange[float32](tensor.Shape{5})
	v, err := NewView(src, nil, tensor.Shape{2})
	require.NoError(t, err)

	same, err := NewView(src.Clone(), nil, tensor.Shape{2})
	require.NoError(t, err)
	assert.True(t, Equal[float32](v, same))

	dense := v.Materialize()
	assert.True(t, Equal[float32](v, dense))

	dense.Set(-1, 1, 3)
	assert.False(t, Equal[float32](v, dense))

	other, err := NewView(src, nil, tensor.Shape{3})
	require.NoError(t, err)
	assert.False(t, Equal[float32](v, other))
}
