// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense tensors for sliding-window contractions.
//
// # Overview
//
// This package provides:
//   - Generic type-safe tensors (Tensor[T])
//   - Untyped RawTensor values for dtype-dispatched operations
//   - Row-major contiguous storage with zero-copy reshapes
//
// # Basic Usage
//
//	import "github.com/born-ml/hankel/tensor"
//
//	func main() {
//	    x := tensor.Zeros[float32](tensor.Shape{2, 3})
//	    x.Set(1.5, 0, 2)
//	    fmt.Println(x) // Tensor[float32][2 3]
//	}
//
// # Supported Data Types
//
// The tensor package supports the following data types via the DType constraint:
//   - float16.Float16 (storage only, widened to float32 for arithmetic)
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (storage only, widened to int32 for arithmetic)
//
// # Type Promotion
//
// Operations on two tensors of different dtypes compute in Promote(a, b):
//
//	tensor.Promote(tensor.Float16, tensor.Float32) // Float32
//	tensor.Promote(tensor.Int32, tensor.Float32)   // Float64
//	tensor.Promote(tensor.Uint8, tensor.Int32)     // Int32
package tensor
