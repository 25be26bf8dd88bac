package hankel

import (
	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// Forward correlates every hidden unit's kernel with every window of visible.
//
// Shapes:
//   - weight:  (C, J_1..J_n, M)
//   - visible: (C, N_1..N_n, B)
//   - result:  (M, N_1-J_1+1, .., N_n-J_n+1, B)
//
// Semantics:
//
//	hidden[μ, k, b] = Σ_c Σ_j weight[c, j, μ] * visible[c, j+k, b]
//
// Channel and batch must already be flattened (see Flatten). The result has
// dtype tensor.Promote(weight.DType(), visible.DType()). Returns
// ErrShapeMismatch if the channel counts or spatial ranks disagree, and
// ErrInvalidWindowSize if J_d > N_d on some axis.
func Forward(weight, visible *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	s, err := checkForward(weight.Shape(), visible.Shape())
	if err != nil {
		return nil, err
	}

	dt := tensor.Promote(weight.DType(), visible.DType())
	hidden, err := tensor.NewRaw(s.hiddenShape(), dt)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	run(kindForward, hidden, tensor.Cast(weight, dt), tensor.Cast(visible, dt), s, o.parallel)
	return hidden, nil
}

// ConvForward is the typed form of Forward.
func ConvForward[T tensor.Numeric](weight, visible *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	hidden, err := Forward(weight.Raw(), visible.Raw(), opts...)
	if err != nil {
		return nil, err
	}
	return tensor.New[T](hidden), nil
}

// forward computes hidden from weight and visible.
//
// Each hidden unit μ owns the slab hidden[μ, ...], so units run in parallel
// without sharing any output cell.
func forward[T tensor.Numeric](hidden, weight, visible []T, s contraction, cfg parallel.Config) {
	channels, units, batch := s.visible.lead, s.units, s.visible.trail

	parallel.ForWork(units, s.cost()/units, func(mu int) {
		h := hidden[mu*s.hidden.block : (mu+1)*s.hidden.block]

		for c := 0; c < channels; c++ {
			wc := weight[c*s.weight.block:]
			vc := visible[c*s.visible.block : (c+1)*s.visible.block]

			walk(s.geo.Kernel, s.weight.strides, s.visible.strides, func(wOff, jOff int) {
				w := wc[wOff+mu]

				walk(s.geo.Output, s.hidden.strides, s.visible.strides, func(hOff, kOff int) {
					dst := h[hOff : hOff+batch]
					src := vc[jOff+kOff : jOff+kOff+batch]
					for b := range dst {
						dst[b] += w * src[b]
					}
				})
			})
		}
	}, cfg)
}
