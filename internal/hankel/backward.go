package hankel

import (
	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// Backward is the adjoint (transpose) of Forward: it scatters every hidden
// activation back over the window that produced it.
//
// Shapes:
//   - weight: (C, J_1..J_n, M)
//   - hidden: (M, K_1..K_n, B)
//   - result: (C, K_1+J_1-1, .., K_n+J_n-1, B)
//
// Semantics:
//
//	visible[c, i, b] = Σ_μ Σ_{j+k=i} weight[c, j, μ] * hidden[μ, k, b]
//
// Several (j, k) pairs land on the same i, so the result is accumulated from
// zero. The result has dtype tensor.Promote(weight.DType(), hidden.DType()).
// Returns ErrShapeMismatch if weight's last axis differs from hidden's first
// or the spatial ranks disagree.
func Backward(weight, hidden *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	s, err := checkBackward(weight.Shape(), hidden.Shape())
	if err != nil {
		return nil, err
	}

	dt := tensor.Promote(weight.DType(), hidden.DType())
	visible, err := tensor.NewRaw(s.visibleShape(), dt)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	run(kindBackward, visible, tensor.Cast(weight, dt), tensor.Cast(hidden, dt), s, o.parallel)
	return visible, nil
}

// BackwardInto is Backward writing into a caller-supplied buffer.
// dst must have the result shape and dtype Backward would produce; its
// previous contents are discarded. Returns ErrShapeMismatch otherwise.
func BackwardInto(dst, weight, hidden *tensor.RawTensor, opts ...Option) error {
	s, err := checkBackward(weight.Shape(), hidden.Shape())
	if err != nil {
		return err
	}
	if want := s.visibleShape(); !dst.Shape().Equal(want) {
		return shapeErr("backward", want, dst.Shape(), "output buffer has the wrong shape")
	}
	dt := tensor.Promote(weight.DType(), hidden.DType())
	if dst.DType() != dt {
		return shapeErr("backward", nil, nil, "output buffer has dtype %s, want %s", dst.DType(), dt)
	}

	dst.Zero()
	o := newOptions(opts)
	run(kindBackward, dst, tensor.Cast(weight, dt), tensor.Cast(hidden, dt), s, o.parallel)
	return nil
}

// ConvBackward is the typed form of Backward.
func ConvBackward[T tensor.Numeric](weight, hidden *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	visible, err := Backward(weight.Raw(), hidden.Raw(), opts...)
	if err != nil {
		return nil, err
	}
	return tensor.New[T](visible), nil
}

// backward accumulates into visible, which must be zeroed.
//
// Writes for channel c only touch visible[c, ...], so channels are the unit of
// parallel work: every overlapping (j, k) pair for a given output cell is
// handled by the same goroutine.
func backward[T tensor.Numeric](visible, weight, hidden []T, s contraction, cfg parallel.Config) {
	channels, units, batch := s.visible.lead, s.units, s.visible.trail

	parallel.ForWork(channels, s.cost()/channels, func(c int) {
		wc := weight[c*s.weight.block:]
		vc := visible[c*s.visible.block : (c+1)*s.visible.block]

		for mu := 0; mu < units; mu++ {
			hm := hidden[mu*s.hidden.block : (mu+1)*s.hidden.block]

			walk(s.geo.Kernel, s.weight.strides, s.visible.strides, func(wOff, jOff int) {
				w := wc[wOff+mu]

				walk(s.geo.Output, s.hidden.strides, s.visible.strides, func(hOff, kOff int) {
					dst := vc[jOff+kOff : jOff+kOff+batch]
					src := hm[hOff : hOff+batch]
					for b := range dst {
						dst[b] += w * src[b]
					}
				})
			})
		}
	}, cfg)
}
