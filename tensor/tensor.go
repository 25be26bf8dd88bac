// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor types used by the hankel package.
//
// The package defines:
//   - Tensor[T]: generic dense tensor with row-major storage
//   - RawTensor: untyped tensor for dtype-dispatched operations
//   - Shape, DataType: core type definitions
//
// Example:
//
//	x := tensor.Arange[float32](tensor.Shape{2, 5})
//	x.Set(7, 1, 3)
//	fmt.Println(x.At(1, 3)) // 7
package tensor

import (
	"math/rand/v2"

	"github.com/born-ml/hankel/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float16.Float16, float32, float64, int32, int64, uint8.
type DType = tensor.DType

// Numeric is the constraint for element types the contraction kernels run on.
type Numeric = tensor.Numeric

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Float16 DataType = tensor.Float16
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Tensor is a generic type-safe tensor.
//
// T is the element type. Data is stored contiguously in row-major order
// and At/Set address it by multi-index.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	v := x.At(1, 2) // 6
type Tensor[T DType] = tensor.Tensor[T]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros[float32](tensor.Shape{2, 3})
func Zeros[T DType](shape Shape) *Tensor[T] {
	return tensor.Zeros[T](shape)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	x := tensor.Full[float32](tensor.Shape{2, 3}, 3.14)
func Full[T DType](shape Shape, value T) *Tensor[T] {
	return tensor.Full(shape, value)
}

// Arange creates a tensor of the given shape holding 0, 1, 2, ... in
// row-major order.
//
// Example:
//
//	x := tensor.Arange[int64](tensor.Shape{2, 3}) // [[0 1 2] [3 4 5]]
func Arange[T DType](shape Shape) *Tensor[T] {
	return tensor.Arange[T](shape)
}

// Rand creates a tensor filled with small random values drawn from rng.
// Floating-point values are uniform in [-1, 1); integers are small enough
// that contractions over them do not overflow.
//
// Example:
//
//	rng := rand.New(rand.NewPCG(1, 2))
//	x := tensor.Rand[float64](tensor.Shape{2, 3}, rng)
func Rand[T DType](shape Shape, rng *rand.Rand) *Tensor[T] {
	return tensor.Rand[T](shape, rng)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	data := []float32{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice[T DType](data []T, shape Shape) (*Tensor[T], error) {
	return tensor.FromSlice(data, shape)
}

// New creates a typed tensor over a raw tensor, sharing its storage.
// It panics if T does not match raw's dtype.
func New[T DType](raw *RawTensor) *Tensor[T] {
	return tensor.New[T](raw)
}

// NewRaw creates a new zeroed raw tensor with the given shape and dtype.
//
// This is a low-level function. Most users should use high-level creation functions instead.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Utility functions

// Promote returns the dtype a binary operation on a and b computes in.
//
// Example:
//
//	tensor.Promote(tensor.Int32, tensor.Float32) // Float64
func Promote(a, b DataType) DataType {
	return tensor.Promote(a, b)
}

// Cast converts x to dtype. It returns x itself if the dtype already matches.
func Cast(x *RawTensor, dtype DataType) *RawTensor {
	return tensor.Cast(x, dtype)
}

// Concat joins shapes end to end.
func Concat(shapes ...Shape) Shape {
	return tensor.Concat(shapes...)
}
