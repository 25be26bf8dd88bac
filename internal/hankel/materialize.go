package hankel

import (
	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// Materialize returns a new dense tensor equal to NewView(src, channelSize, kernelSize).
func Materialize[T tensor.DType](src *tensor.Tensor[T], channelSize, kernelSize tensor.Shape, opts ...Option) (*tensor.Tensor[T], error) {
	v, err := NewView(src, channelSize, kernelSize)
	if err != nil {
		return nil, err
	}
	return v.Materialize(opts...), nil
}

// Materialize copies the view into a new dense tensor of shape v.Shape().
//
// Algorithm:
//  1. Treat the source as (C, N..., B) and the result as (C, J..., K..., B),
//     with all channel axes and all batch axes flattened.
//  2. For each (c, j) row of the result, walk the window positions k and copy
//     the contiguous batch run source[c, j+k, :] into result[c, j, k, :].
//
// Rows never overlap, so they are filled in parallel.
func (v *View[T]) Materialize(opts ...Option) *tensor.Tensor[T] {
	o := newOptions(opts)
	flat := v.geo.Flat()
	out := tensor.Zeros[T](v.shape)

	materializeFlat(out.Data(), v.src.Data(), flat, o.parallel)

	return out
}

func materializeFlat[T tensor.DType](dst, src []T, g Geometry, cfg parallel.Config) {
	in := newFrame(g.SourceShape())
	positions := newFrame(tensor.Concat(tensor.Shape{1}, g.Output, g.Batch))

	nJ := g.Kernel.NumElements()
	rowLen := g.Output.NumElements() * in.trail
	rows := in.lead * nJ

	parallel.ForWork(rows, rowLen, func(r int) {
		c, jFlat := r/nJ, r%nJ
		base := c*in.block + in.offsetOf(g.Kernel, jFlat)
		row := dst[r*rowLen : (r+1)*rowLen]

		walk(g.Output, in.strides, positions.strides, func(srcOff, dstOff int) {
			copy(row[dstOff:dstOff+in.trail], src[base+srcOff:base+srcOff+in.trail])
		})
	}, cfg)
}
