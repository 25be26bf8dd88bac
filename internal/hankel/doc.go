// Package hankel implements sliding-window (Hankel) views over tensors and
// the two contractions built on the same window geometry.
//
// A tensor is split into channel axes, spatial axes and batch axes, in that
// order. Sliding a window of size J over the spatial axes gives a view of
// shape (channel..., J..., K..., batch...), K = N - J + 1, where
//
//	view[c, j, k, b] = source[c, j+k, b]
//
// Overview:
//   - Geometry: shape arithmetic and the index transform
//   - View: zero-copy read access through that transform
//   - Materialize: the same view copied into a dense tensor
//   - Forward: hidden[μ, k, b] = Σ_c Σ_j weight[c, j, μ] * visible[c, j+k, b]
//   - Backward: the adjoint of Forward (scatter-accumulate)
//   - WeightGradient: ∂Backward/∂weight applied to an upstream gradient
//   - Matrix, Dense: gonum adapters for the view
//
// Contractions take flattened operands, one channel axis and one batch axis;
// Flatten and Unflatten convert between the two layouts.
package hankel
