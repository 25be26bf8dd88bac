// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package hankel provides sliding-window (Hankel) views and the
// convolution-style contractions built on them.
//
// # Overview
//
// A source tensor of shape (channel..., N..., batch...) seen through a window
// of size J becomes a view of shape (channel..., J..., K..., batch...) with
// K = N - J + 1 and
//
//	view[c, j, k, b] = source[c, j+k, b]
//
// The package provides:
//   - View: zero-copy access to the windows
//   - Materialize: the same windows copied into a dense tensor
//   - Forward: hidden[μ, k, b] = Σ_c Σ_j weight[c, j, μ] * visible[c, j+k, b]
//   - Backward: the adjoint of Forward
//   - WeightGradient: the weight gradient of Backward
//   - Matrix, Dense: the view as a gonum matrix
//
// # Basic Usage
//
//	x := tensor.Arange[float32](tensor.Shape{1, 4, 1}) // (C, N, B)
//	w := tensor.Full[float32](tensor.Shape{1, 2, 1}, 1) // (C, J, M)
//
//	h, err := hankel.ConvForward(w, x)                  // (M, K, B) = [1 3 5]
//	v, err := hankel.ConvBackward(w, h)                 // (C, N, B)
//
// # Parallelism
//
// Every operation splits its work across goroutines so that no two goroutines
// write the same output element. WithParallel tunes or disables this:
//
//	h, err := hankel.ConvForward(w, x, hankel.WithParallel(hankel.Sequential()))
package hankel
