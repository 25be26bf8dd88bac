package hankel

import (
	"github.com/born-ml/hankel/internal/tensor"
)

// Operation records a contraction so an external autodiff engine can
// propagate gradients through it.
//
// Backward returns one gradient per input, in the order of Inputs. A nil
// entry means the gradient for that input is not provided.
type Operation interface {
	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor

	// Backward computes input gradients given the output gradient.
	Backward(outputGrad *tensor.RawTensor) ([]*tensor.RawTensor, error)
}

// AdjointOp records output = Backward(weight, hidden).
//
// Backward (gradients):
//   - d_weight: WeightGradient(d_output, weight, hidden)
//   - d_hidden: not computed; always nil
type AdjointOp struct {
	weight *tensor.RawTensor
	hidden *tensor.RawTensor
	output *tensor.RawTensor
	opts   []Option
}

// NewAdjointOp creates a new adjoint contraction operation.
func NewAdjointOp(weight, hidden, output *tensor.RawTensor, opts ...Option) *AdjointOp {
	return &AdjointOp{
		weight: weight,
		hidden: hidden,
		output: output,
		opts:   opts,
	}
}

// Inputs returns [weight, hidden].
func (op *AdjointOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.weight, op.hidden}
}

// Output returns the output tensor.
func (op *AdjointOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward returns [d_weight, nil].
func (op *AdjointOp) Backward(outputGrad *tensor.RawTensor) ([]*tensor.RawTensor, error) {
	dWeight, err := WeightGradient(outputGrad, op.weight, op.hidden, op.opts...)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{dWeight, nil}, nil
}

// ForwardOp records output = Forward(weight, visible).
//
// Backward (gradients):
//   - d_weight:  Σ_{k,b} d_output[μ, k, b] * visible[c, j+k, b]
//   - d_visible: Backward(weight, d_output), the adjoint contraction
type ForwardOp struct {
	weight  *tensor.RawTensor
	visible *tensor.RawTensor
	output  *tensor.RawTensor
	opts    []Option
}

// NewForwardOp creates a new forward contraction operation.
func NewForwardOp(weight, visible, output *tensor.RawTensor, opts ...Option) *ForwardOp {
	return &ForwardOp{
		weight:  weight,
		visible: visible,
		output:  output,
		opts:    opts,
	}
}

// Inputs returns [weight, visible].
func (op *ForwardOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.weight, op.visible}
}

// Output returns the output tensor.
func (op *ForwardOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward returns [d_weight, d_visible].
func (op *ForwardOp) Backward(outputGrad *tensor.RawTensor) ([]*tensor.RawTensor, error) {
	dWeight, err := WeightGradient(op.visible, op.weight, outputGrad, op.opts...)
	if err != nil {
		return nil, err
	}
	dVisible, err := Backward(op.weight, outputGrad, op.opts...)
	if err != nil {
		return nil, err
	}
	return []*tensor.RawTensor{dWeight, dVisible}, nil
}
