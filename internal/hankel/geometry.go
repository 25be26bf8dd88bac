package hankel

import (
	"fmt"

	"github.com/born-ml/hankel/internal/tensor"
)

// Geometry describes how a sliding window of size Kernel moves over the
// spatial axes of a tensor laid out as (channel..., input..., batch...).
//
// Every index transform in this package goes through the same rule:
// view index (c, j, k, b) reads source index (c, j+k, b), componentwise
// over the spatial axes, with all indices 0-based.
type Geometry struct {
	Channel tensor.Shape // Leading axes, carried through unchanged
	Kernel  tensor.Shape // Window extent per spatial axis (J)
	Input   tensor.Shape // Source extent per spatial axis (N)
	Output  tensor.Shape // Window positions per spatial axis (K = N - J + 1)
	Batch   tensor.Shape // Trailing axes, carried through unchanged
}

// NewGeometry derives the window geometry of a tensor with the given shape.
//
// The len(kernelSize) axes after the channel axes are the spatial axes;
// everything after them is batch. Returns ErrShapeMismatch if the shape does
// not start with channelSize or is too short, and ErrInvalidWindowSize if
// the window is larger than the input along any axis.
func NewGeometry(shape, channelSize, kernelSize tensor.Shape) (Geometry, error) {
	const op = "geometry"

	if len(kernelSize) == 0 {
		return Geometry{}, shapeErr(op, nil, nil, "at least one spatial axis is required")
	}
	if err := shape.Validate(); err != nil {
		return Geometry{}, shapeErr(op, nil, shape, "%v", err)
	}
	if err := channelSize.Validate(); err != nil {
		return Geometry{}, shapeErr(op, nil, channelSize, "channel size: %v", err)
	}
	if err := kernelSize.Validate(); err != nil {
		return Geometry{}, shapeErr(op, nil, kernelSize, "kernel size: %v", err)
	}

	nc, nk := len(channelSize), len(kernelSize)
	if len(shape) < nc+nk {
		return Geometry{}, shapeErr(op, nil, shape,
			"rank %d is less than %d channel axes plus %d spatial axes", len(shape), nc, nk)
	}
	if !shape[:nc].Equal(channelSize) {
		return Geometry{}, shapeErr(op, channelSize, shape[:nc], "channel axes disagree")
	}

	input := shape[nc : nc+nk].Clone()
	output := make(tensor.Shape, nk)
	for d := range kernelSize {
		if kernelSize[d] > input[d] {
			return Geometry{}, &ShapeError{
				Op:      op,
				Want:    input,
				Got:     kernelSize.Clone(),
				Details: fmt.Sprintf("kernel %d exceeds input %d on spatial axis %d", kernelSize[d], input[d], d),
				Err:     ErrInvalidWindowSize,
			}
		}
		output[d] = input[d] - kernelSize[d] + 1
	}

	return Geometry{
		Channel: channelSize.Clone(),
		Kernel:  kernelSize.Clone(),
		Input:   input,
		Output:  output,
		Batch:   shape[nc+nk:].Clone(),
	}, nil
}

// SpatialRank returns the number of axes the window moves over.
func (g Geometry) SpatialRank() int {
	return len(g.Kernel)
}

// SourceShape returns (channel..., input..., batch...).
func (g Geometry) SourceShape() tensor.Shape {
	return tensor.Concat(g.Channel, g.Input, g.Batch)
}

// ViewShape returns (channel..., kernel..., output..., batch...).
func (g Geometry) ViewShape() tensor.Shape {
	return tensor.Concat(g.Channel, g.Kernel, g.Output, g.Batch)
}

// Rank returns the rank of the view, rank(source) + len(kernel).
func (g Geometry) Rank() int {
	return len(g.Channel) + 2*len(g.Kernel) + len(g.Batch)
}

// Flat returns the geometry with all channel axes merged into one and all
// batch axes merged into one. Spatial axes are unchanged.
func (g Geometry) Flat() Geometry {
	return Geometry{
		Channel: tensor.Shape{g.Channel.NumElements()},
		Kernel:  g.Kernel,
		Input:   g.Input,
		Output:  g.Output,
		Batch:   tensor.Shape{g.Batch.NumElements()},
	}
}

// Contains checks that index addresses an element of the view.
func (g Geometry) Contains(index []int) error {
	shape := g.ViewShape()
	if len(index) != len(shape) {
		return &ShapeError{
			Op:      "index",
			Want:    shape,
			Details: fmt.Sprintf("expected %d indices, got %d", len(shape), len(index)),
			Err:     ErrIndexOutOfRange,
		}
	}
	for axis, idx := range index {
		if idx < 0 || idx >= shape[axis] {
			return &ShapeError{
				Op:      "index",
				Want:    shape,
				Got:     append(tensor.Shape(nil), index...),
				Details: fmt.Sprintf("index %d out of bounds for axis %d (size %d)", idx, axis, shape[axis]),
				Err:     ErrIndexOutOfRange,
			}
		}
	}
	return nil
}

// Underlying maps a view index (c..., j..., k..., b...) to the source index
// (c..., j+k..., b...). The index must satisfy Contains.
func (g Geometry) Underlying(index []int) []int {
	nc, nk := len(g.Channel), len(g.Kernel)
	out := make([]int, 0, len(index)-nk)
	out = append(out, index[:nc]...)
	for d := 0; d < nk; d++ {
		out = append(out, index[nc+d]+index[nc+nk+d])
	}
	return append(out, index[nc+2*nk:]...)
}

// SourceOffset is the linear offset of Underlying(index) under the source
// strides, computed without allocating.
func (g Geometry) SourceOffset(index, strides []int) int {
	nc, nk := len(g.Channel), len(g.Kernel)
	off := 0
	for i := 0; i < nc; i++ {
		off += index[i] * strides[i]
	}
	for d := 0; d < nk; d++ {
		off += (index[nc+d] + index[nc+nk+d]) * strides[nc+d]
	}
	for i := nc + 2*nk; i < len(index); i++ {
		off += index[i] * strides[i-nk]
	}
	return off
}

// String implements fmt.Stringer.
func (g Geometry) String() string {
	return fmt.Sprintf("channel=%v kernel=%v input=%v output=%v batch=%v",
		[]int(g.Channel), []int(g.Kernel), []int(g.Input), []int(g.Output), []int(g.Batch))
}
