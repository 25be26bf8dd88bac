package hankel

import (
	"github.com/born-ml/hankel/internal/tensor"
)

// Indexed is anything with a shape and element access by multi-index:
// a View or a tensor.Tensor.
type Indexed[T tensor.DType] interface {
	Shape() tensor.Shape
	At(indices ...int) T
}

// View is a read-only sliding-window (Hankel) view of a tensor.
//
// A View over a source of shape (C..., N..., B...) with window J has shape
// (C..., J..., N-J+1..., B...) and
//
//	view.At(c, j, k, b) == source.At(c, j+k, b)
//
// No data is copied. The view borrows the source: it must not outlive it,
// and the source must not be modified while the view is in use.
type View[T tensor.DType] struct {
	src     *tensor.Tensor[T]
	geo     Geometry
	shape   tensor.Shape
	strides []int // source strides
}

// NewView creates a sliding-window view of src.
//
// channelSize must equal the leading axes of src; kernelSize gives the window
// extent on the axes right after them. All remaining axes are batch axes.
func NewView[T tensor.DType](src *tensor.Tensor[T], channelSize, kernelSize tensor.Shape) (*View[T], error) {
	geo, err := NewGeometry(src.Shape(), channelSize, kernelSize)
	if err != nil {
		return nil, err
	}

	return &View[T]{
		src:     src,
		geo:     geo,
		shape:   geo.ViewShape(),
		strides: src.Raw().Strides(),
	}, nil
}

// Shape returns (channel..., kernel..., output..., batch...).
func (v *View[T]) Shape() tensor.Shape {
	return v.shape
}

// Rank returns rank(source) + len(kernel).
func (v *View[T]) Rank() int {
	return len(v.shape)
}

// Geometry returns the window geometry of the view.
func (v *View[T]) Geometry() Geometry {
	return v.geo
}

// Source returns the tensor the view reads from.
func (v *View[T]) Source() *tensor.Tensor[T] {
	return v.src
}

// Get returns the element at index (channel..., offset..., position..., batch...).
// Returns ErrIndexOutOfRange if the index does not address an element of the view.
func (v *View[T]) Get(index ...int) (T, error) {
	if err := v.geo.Contains(index); err != nil {
		var zero T
		return zero, err
	}
	return v.src.Data()[v.geo.SourceOffset(index, v.strides)], nil
}

// At is like Get but panics on an invalid index, matching tensor.Tensor.At.
func (v *View[T]) At(index ...int) T {
	val, err := v.Get(index...)
	if err != nil {
		panic(err)
	}
	return val
}

// Equal reports whether a and b have the same shape and the same value at
// every index, using T's == (so NaN never equals NaN).
func Equal[T tensor.DType](a, b Indexed[T]) bool {
	shape := a.Shape()
	if !shape.Equal(b.Shape()) {
		return false
	}

	idx := make([]int, len(shape))
	for flat := 0; flat < shape.NumElements(); flat++ {
		shape.Unravel(flat, idx)
		if a.At(idx...) != b.At(idx...) {
			return false
		}
	}
	return true
}
