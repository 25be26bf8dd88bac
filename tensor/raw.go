// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/hankel/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType()
//   - Type-checked data access via AsFloat32(), AsInt64(), etc.
//   - Deep copies via Clone() and shared-storage reshapes via Reshape()
//
// Most users should use the high-level Tensor[T] type instead.
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
//	data := raw.AsFloat32()  // Type-checked access
//	clone := raw.Clone()     // Independent copy
type RawTensor = tensor.RawTensor
