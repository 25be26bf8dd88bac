// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package hankel

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/hankel/internal/hankel"
	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/tensor"
)

// Errors

// Common errors. Match them with errors.Is.
var (
	// ErrShapeMismatch reports inconsistent operand shapes.
	ErrShapeMismatch = hankel.ErrShapeMismatch

	// ErrInvalidWindowSize reports a window larger than its input.
	// It also matches ErrShapeMismatch.
	ErrInvalidWindowSize = hankel.ErrInvalidWindowSize

	// ErrIndexOutOfRange reports an index outside a view.
	ErrIndexOutOfRange = hankel.ErrIndexOutOfRange
)

// ShapeError provides detailed information about a rejected shape or index.
type ShapeError = hankel.ShapeError

// Geometry

// Geometry splits a source shape into channel, spatial and batch axes.
type Geometry = hankel.Geometry

// NewGeometry validates a source shape against a channel prefix and window size.
//
// Example:
//
//	g, err := hankel.NewGeometry(tensor.Shape{3, 10, 4}, tensor.Shape{3}, tensor.Shape{5})
//	g.ViewShape() // [3 5 6 4]
func NewGeometry(shape, channelSize, kernelSize tensor.Shape) (Geometry, error) {
	return hankel.NewGeometry(shape, channelSize, kernelSize)
}

// Views

// Indexed is anything with a shape and element access by multi-index.
type Indexed[T tensor.DType] = hankel.Indexed[T]

// View is a read-only sliding-window view of a tensor.
type View[T tensor.DType] = hankel.View[T]

// NewView creates a sliding-window view of src without copying.
//
// Example:
//
//	src := tensor.Arange[float32](tensor.Shape{4})
//	v, err := hankel.NewView(src, nil, tensor.Shape{2})
//	v.At(1, 2) // src.At(3)
func NewView[T tensor.DType](src *tensor.Tensor[T], channelSize, kernelSize tensor.Shape) (*View[T], error) {
	return hankel.NewView(src, channelSize, kernelSize)
}

// Materialize copies the sliding-window view of src into a new dense tensor.
func Materialize[T tensor.DType](src *tensor.Tensor[T], channelSize, kernelSize tensor.Shape, opts ...Option) (*tensor.Tensor[T], error) {
	return hankel.Materialize(src, channelSize, kernelSize, opts...)
}

// Equal reports whether a and b have the same shape and elements.
func Equal[T tensor.DType](a, b Indexed[T]) bool {
	return hankel.Equal[T](a, b)
}

// Flatten merges the channel axes and the batch axes of t, returning the
// batch shape for Unflatten. The result shares storage with t.
func Flatten(t *tensor.RawTensor, channelSize tensor.Shape, spatialRank int) (*tensor.RawTensor, tensor.Shape, error) {
	return hankel.Flatten(t, channelSize, spatialRank)
}

// Unflatten splits the first and last axes of t back into leadSize and batchSize.
func Unflatten(t *tensor.RawTensor, leadSize, batchSize tensor.Shape) (*tensor.RawTensor, error) {
	return hankel.Unflatten(t, leadSize, batchSize)
}

// Contractions

// Forward correlates every hidden unit's kernel with every window of visible.
//
//	weight (C, J..., M), visible (C, N..., B) → hidden (M, N-J+1..., B)
func Forward(weight, visible *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return hankel.Forward(weight, visible, opts...)
}

// ConvForward is the typed form of Forward.
func ConvForward[T tensor.Numeric](weight, visible *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	return hankel.ConvForward(weight, visible, opts...)
}

// Backward is the adjoint of Forward.
//
//	weight (C, J..., M), hidden (M, K..., B) → visible (C, K+J-1..., B)
func Backward(weight, hidden *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return hankel.Backward(weight, hidden, opts...)
}

// BackwardInto is Backward writing into dst, whose contents are discarded.
func BackwardInto(dst, weight, hidden *tensor.RawTensor, opts ...Option) error {
	return hankel.BackwardInto(dst, weight, hidden, opts...)
}

// ConvBackward is the typed form of Backward.
func ConvBackward[T tensor.Numeric](weight, hidden *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	return hankel.ConvBackward(weight, hidden, opts...)
}

// WeightGradient is the gradient of Backward(weight, hidden) with respect to
// weight, given the upstream gradient dVisible.
func WeightGradient(dVisible, weight, hidden *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	return hankel.WeightGradient(dVisible, weight, hidden, opts...)
}

// ConvWeightGradient is the typed form of WeightGradient.
func ConvWeightGradient[T tensor.Numeric](dVisible, weight, hidden *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	return hankel.ConvWeightGradient(dVisible, weight, hidden, opts...)
}

// Autodiff integration

// Operation records a contraction for gradient propagation.
type Operation = hankel.Operation

// AdjointOp records output = Backward(weight, hidden).
type AdjointOp = hankel.AdjointOp

// NewAdjointOp creates a new adjoint contraction operation.
func NewAdjointOp(weight, hidden, output *tensor.RawTensor, opts ...Option) *AdjointOp {
	return hankel.NewAdjointOp(weight, hidden, output, opts...)
}

// ForwardOp records output = Forward(weight, visible).
type ForwardOp = hankel.ForwardOp

// NewForwardOp creates a new forward contraction operation.
func NewForwardOp(weight, visible, output *tensor.RawTensor, opts ...Option) *ForwardOp {
	return hankel.NewForwardOp(weight, visible, output, opts...)
}

// gonum adapters

// Matrix presents a View as a gonum mat.Matrix with rows over (channel,
// offset) and columns over (position, batch).
type Matrix[T tensor.DType] = hankel.Matrix[T]

// NewMatrix wraps v as a mat.Matrix without copying.
func NewMatrix[T tensor.DType](v *View[T]) *Matrix[T] {
	return hankel.NewMatrix(v)
}

// Dense materializes v into a gonum dense matrix with the layout of Matrix.
func Dense[T tensor.DType](v *View[T], opts ...Option) *mat.Dense {
	return hankel.Dense(v, opts...)
}

// Options

// Option configures a materialization or contraction call.
type Option = hankel.Option

// ParallelConfig controls how work is split across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallel returns the default configuration, one worker per CPU.
func DefaultParallel() ParallelConfig {
	return parallel.DefaultConfig()
}

// Sequential returns a configuration that runs on the calling goroutine.
func Sequential() ParallelConfig {
	return parallel.Sequential()
}

// WithParallel sets how work is split across goroutines.
func WithParallel(cfg ParallelConfig) Option {
	return hankel.WithParallel(cfg)
}
