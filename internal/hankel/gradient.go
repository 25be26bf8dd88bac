package hankel

import (
	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// WeightGradient is the derivative of Backward(weight, hidden) with respect
// to weight, applied to the upstream gradient dVisible:
//
//	dWeight[c, j, μ] = Σ_k Σ_b dVisible[c, j+k, b] * hidden[μ, k, b]
//
// dVisible must have the shape of Backward's result. The result has weight's
// shape and dtype tensor.Promote(dVisible.DType(), hidden.DType()).
//
// The same reduction gives Forward's weight gradient with visible in place
// of dVisible and the hidden gradient in place of hidden.
func WeightGradient(dVisible, weight, hidden *tensor.RawTensor, opts ...Option) (*tensor.RawTensor, error) {
	s, err := checkGradient(dVisible.Shape(), weight.Shape(), hidden.Shape())
	if err != nil {
		return nil, err
	}

	dt := tensor.Promote(dVisible.DType(), hidden.DType())
	dWeight, err := tensor.NewRaw(s.weightShape(), dt)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	run(kindWeightGrad, dWeight, tensor.Cast(dVisible, dt), tensor.Cast(hidden, dt), s, o.parallel)
	return dWeight, nil
}

// ConvWeightGradient is the typed form of WeightGradient.
func ConvWeightGradient[T tensor.Numeric](dVisible, weight, hidden *tensor.Tensor[T], opts ...Option) (*tensor.Tensor[T], error) {
	dWeight, err := WeightGradient(dVisible.Raw(), weight.Raw(), hidden.Raw(), opts...)
	if err != nil {
		return nil, err
	}
	return tensor.New[T](dWeight), nil
}

// weightGrad fills dWeight. Each channel owns dWeight[c, ...].
func weightGrad[T tensor.Numeric](dWeight, dVisible, hidden []T, s contraction, cfg parallel.Config) {
	channels, units, batch := s.visible.lead, s.units, s.visible.trail

	parallel.ForWork(channels, s.cost()/channels, func(c int) {
		dw := dWeight[c*s.weight.block : (c+1)*s.weight.block]
		dv := dVisible[c*s.visible.block : (c+1)*s.visible.block]

		walk(s.geo.Kernel, s.weight.strides, s.visible.strides, func(wOff, jOff int) {
			for mu := 0; mu < units; mu++ {
				hm := hidden[mu*s.hidden.block : (mu+1)*s.hidden.block]

				var acc T
				walk(s.geo.Output, s.hidden.strides, s.visible.strides, func(hOff, kOff int) {
					src := dv[jOff+kOff : jOff+kOff+batch]
					h := hm[hOff : hOff+batch]
					for b := range src {
						acc += src[b] * h[b]
					}
				})
				dw[wOff+mu] = acc
			}
		})
	}, cfg)
}
