package hankel

import "github.com/born-ml/hankel/internal/tensor"

// frame is a row-major tensor viewed as (lead, spatial..., trail).
//
// Every kernel in this package addresses its operands through frames. For a
// source frame s, the element (c, j+k, b) sits at
//
//	c*s.block + s.offset(j) + s.offset(k) + b
//
// because the spatial offset is linear in the index. Walking j and k
// separately with the same strides therefore reproduces Geometry.Underlying.
type frame struct {
	lead    int   // extent of axis 0
	spatial []int // extents of the middle axes
	trail   int   // extent of the last axis (stride 1)
	strides []int // strides of the middle axes
	block   int   // stride of axis 0
}

// newFrame splits shape into its first axis, middle axes and last axis.
// shape must have rank >= 2.
func newFrame(shape tensor.Shape) frame {
	n := len(shape)
	strides := shape.ComputeStrides()
	return frame{
		lead:    shape[0],
		spatial: shape[1 : n-1],
		trail:   shape[n-1],
		strides: strides[1 : n-1],
		block:   strides[0],
	}
}

// offsetOf returns the spatial offset of the row-major position flat within
// extents, using the frame's strides. len(extents) must equal the spatial rank.
func (f frame) offsetOf(extents tensor.Shape, flat int) int {
	off := 0
	for d := len(extents) - 1; d >= 0; d-- {
		off += (flat % extents[d]) * f.strides[d]
		flat /= extents[d]
	}
	return off
}

// walk visits every multi-index of extents in row-major order and calls fn
// with the index's linear offset under strides a and under strides b.
// With no extents fn is called once with (0, 0).
func walk(extents, a, b []int, fn func(offA, offB int)) {
	n := len(extents)
	idx := make([]int, n)
	offA, offB := 0, 0
	for {
		fn(offA, offB)

		d := n - 1
		for ; d >= 0; d-- {
			idx[d]++
			offA += a[d]
			offB += b[d]
			if idx[d] < extents[d] {
				break
			}
			offA -= a[d] * extents[d]
			offB -= b[d] * extents[d]
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}
