package hankel

import (
	"errors"
	"fmt"

	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// contraction holds the validated shapes shared by the contraction kernels.
//
//	weight  (C, J..., M)
//	visible (C, N..., B)   N = J + K - 1
//	hidden  (M, K..., B)
type contraction struct {
	geo     Geometry // flat: Channel = {C}, Batch = {B}
	units   int      // M
	weight  frame
	visible frame
	hidden  frame
}

func newContraction(g Geometry, units int) contraction {
	c, b := g.Channel[0], g.Batch[0]
	return contraction{
		geo:     g,
		units:   units,
		weight:  newFrame(tensor.Concat(tensor.Shape{c}, g.Kernel, tensor.Shape{units})),
		visible: newFrame(tensor.Concat(tensor.Shape{c}, g.Input, tensor.Shape{b})),
		hidden:  newFrame(tensor.Concat(tensor.Shape{units}, g.Output, tensor.Shape{b})),
	}
}

func (s contraction) weightShape() tensor.Shape {
	return tensor.Concat(s.geo.Channel, s.geo.Kernel, tensor.Shape{s.units})
}

func (s contraction) visibleShape() tensor.Shape {
	return s.geo.SourceShape()
}

func (s contraction) hiddenShape() tensor.Shape {
	return tensor.Concat(tensor.Shape{s.units}, s.geo.Output, s.geo.Batch)
}

// cost is the number of multiply-adds in one contraction.
func (s contraction) cost() int {
	return s.geo.Channel[0] * s.geo.Kernel.NumElements() * s.units * s.geo.Output.NumElements() * s.geo.Batch[0]
}

// checkForward validates weight (C, J..., M) against visible (C, N..., B).
func checkForward(weight, visible tensor.Shape) (contraction, error) {
	const op = "forward"

	n, err := spatialRank(op, weight, visible)
	if err != nil {
		return contraction{}, err
	}
	if weight[0] != visible[0] {
		return contraction{}, shapeErr(op, weight[:1], visible[:1],
			"weight has %d channels, visible has %d", weight[0], visible[0])
	}

	g, err := NewGeometry(visible, weight[:1], weight[1:n+1])
	if err != nil {
		return contraction{}, withOp(err, op)
	}
	return newContraction(g, weight[n+1]), nil
}

// checkBackward validates weight (C, J..., M) against hidden (M, K..., B).
func checkBackward(weight, hidden tensor.Shape) (contraction, error) {
	const op = "backward"

	n, err := spatialRank(op, weight, hidden)
	if err != nil {
		return contraction{}, err
	}
	if weight[n+1] != hidden[0] {
		return contraction{}, shapeErr(op, weight[n+1:], hidden[:1],
			"weight has %d hidden units, hidden has %d", weight[n+1], hidden[0])
	}

	kernel := weight[1 : n+1]
	input := make(tensor.Shape, n)
	for d := range input {
		input[d] = hidden[1+d] + kernel[d] - 1
	}

	visible := tensor.Concat(weight[:1], input, hidden[n+1:])
	g, err := NewGeometry(visible, weight[:1], kernel)
	if err != nil {
		return contraction{}, withOp(err, op)
	}
	return newContraction(g, weight[n+1]), nil
}

// checkGradient validates the operands of the weight gradient.
// dVisible must have the shape Backward(weight, hidden) produces.
func checkGradient(dVisible, weight, hidden tensor.Shape) (contraction, error) {
	s, err := checkBackward(weight, hidden)
	if err != nil {
		return contraction{}, withOp(err, "weight gradient")
	}
	if want := s.visibleShape(); !dVisible.Equal(want) {
		return contraction{}, shapeErr("weight gradient", want, dVisible, "upstream gradient has the wrong shape")
	}
	return s, nil
}

// spatialRank checks that a and b are both (lead, spatial..., trail) with the
// same number of spatial axes, and returns that number.
func spatialRank(op string, a, b tensor.Shape) (int, error) {
	if len(a) < 3 {
		return 0, shapeErr(op, nil, a, "weight must be (channel, kernel..., units) with at least one kernel axis")
	}
	if len(b) != len(a) {
		return 0, shapeErr(op, nil, b, "expected rank %d to match weight %v", len(a), a)
	}
	return len(a) - 2, nil
}

func withOp(err error, op string) error {
	var se *ShapeError
	if errors.As(err, &se) {
		out := *se
		out.Op = op
		return &out
	}
	return err
}

type kernelKind int

const (
	kindForward kernelKind = iota
	kindBackward
	kindWeightGrad
)

// run executes a kernel on tensors that all have the numeric dtype of out.
func run(kind kernelKind, out, a, b *tensor.RawTensor, s contraction, cfg parallel.Config) {
	switch out.DType() {
	case tensor.Float32:
		runTyped[float32](kind, out, a, b, s, cfg)
	case tensor.Float64:
		runTyped[float64](kind, out, a, b, s, cfg)
	case tensor.Int32:
		runTyped[int32](kind, out, a, b, s, cfg)
	case tensor.Int64:
		runTyped[int64](kind, out, a, b, s, cfg)
	default:
		panic(fmt.Sprintf("hankel: no kernel for dtype %s", out.DType()))
	}
}

func runTyped[T tensor.Numeric](kind kernelKind, out, a, b *tensor.RawTensor, s contraction, cfg parallel.Config) {
	o := tensor.New[T](out).Data()
	x := tensor.New[T](a).Data()
	y := tensor.New[T](b).Data()

	switch kind {
	case kindForward:
		forward(o, x, y, s, cfg)
	case kindBackward:
		backward(o, x, y, s, cfg)
	case kindWeightGrad:
		weightGrad(o, x, y, s, cfg)
	}
}
