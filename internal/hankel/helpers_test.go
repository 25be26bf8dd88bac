package hankel

import (
	"math/rand/v2"

	"github.com/born-ml/hankel/internal/parallel"
	"github.com/born-ml/hankel/internal/tensor"
)

// contractionCase is a set of consistent contraction shapes.
type contractionCase struct {
	name     string
	channels int
	input    tensor.Shape // N
	kernel   tensor.Shape // J
	units    int          // M
	batch    int          // B
}

func (c contractionCase) weightShape() tensor.Shape {
	return tensor.Concat(tensor.Shape{c.channels}, c.kernel, tensor.Shape{c.units})
}

func (c contractionCase) visibleShape() tensor.Shape {
	return tensor.Concat(tensor.Shape{c.channels}, c.input, tensor.Shape{c.batch})
}

func (c contractionCase) hiddenShape() tensor.Shape {
	out := make(tensor.Shape, len(c.input))
	for d := range out {
		out[d] = c.input[d] - c.kernel[d] + 1
	}
	return tensor.Concat(tensor.Shape{c.units}, out, tensor.Shape{c.batch})
}

// rankCases covers spatial ranks 1 through 4.
var rankCases = []contractionCase{
	{name: "rank1", channels: 2, input: tensor.Shape{6}, kernel: tensor.Shape{3}, units: 3, batch: 2},
	{name: "rank2", channels: 2, input: tensor.Shape{4, 5}, kernel: tensor.Shape{2, 3}, units: 2, batch: 3},
	{name: "rank3", channels: 3, input: tensor.Shape{3, 3, 4}, kernel: tensor.Shape{2, 1, 2}, units: 2, batch: 2},
	{name: "rank4", channels: 2, input: tensor.Shape{3, 2, 3, 2}, kernel: tensor.Shape{2, 1, 2, 2}, units: 2, batch: 2},
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // deterministic test data
}

// seqOpt runs kernels on the test goroutine.
var seqOpt = WithParallel(parallel.Sequential())

// eagerOpt forces every kernel to split work even for tiny tensors.
var eagerOpt = WithParallel(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1, MinWork: 1})

// refForward evaluates the forward contraction straight from its definition,
// one output element at a time.
func refForward[T tensor.Numeric](weight, visible *tensor.Tensor[T]) *tensor.Tensor[T] {
	ws := weight.Shape()
	n := len(ws) - 2
	channels, kernel, units := ws[0], ws[1:n+1], ws[n+1]
	batch := visible.Shape()[n+1]

	output := make(tensor.Shape, n)
	for d := range output {
		output[d] = visible.Shape()[1+d] - kernel[d] + 1
	}
	hidden := tensor.Zeros[T](tensor.Concat(tensor.Shape{units}, output, tensor.Shape{batch}))

	k := make([]int, n)
	j := make([]int, n)
	for mu := 0; mu < units; mu++ {
		for kf := 0; kf < output.NumElements(); kf++ {
			output.Unravel(kf, k)
			for b := 0; b < batch; b++ {
				var sum T
				for c := 0; c < channels; c++ {
					for jf := 0; jf < kernel.NumElements(); jf++ {
						kernel.Unravel(jf, j)
						wIdx := append(append([]int{c}, j...), mu)
						vIdx := []int{c}
						for d := range j {
							vIdx = append(vIdx, j[d]+k[d])
						}
						vIdx = append(vIdx, b)
						sum += weight.At(wIdx...) * visible.At(vIdx...)
					}
				}
				hidden.Set(sum, append(append([]int{mu}, k...), b)...)
			}
		}
	}
	return hidden
}

// refBackward scatters every weight·hidden product into its visible cell.
func refBackward[T tensor.Numeric](weight, hidden *tensor.Tensor[T]) *tensor.Tensor[T] {
	ws, hs := weight.Shape(), hidden.Shape()
	n := len(ws) - 2
	channels, kernel, units := ws[0], ws[1:n+1], ws[n+1]
	output, batch := hs[1:n+1], hs[n+1]

	input := make(tensor.Shape, n)
	for d := range input {
		input[d] = output[d] + kernel[d] - 1
	}
	visible := tensor.Zeros[T](tensor.Concat(tensor.Shape{channels}, input, tensor.Shape{batch}))

	k := make([]int, n)
	j := make([]int, n)
	for c := 0; c < channels; c++ {
		for jf := 0; jf < kernel.NumElements(); jf++ {
			kernel.Unravel(jf, j)
			for mu := 0; mu < units; mu++ {
				w := weight.At(append(append([]int{c}, j...), mu)...)
				for kf := 0; kf < output.NumElements(); kf++ {
					output.Unravel(kf, k)
					for b := 0; b < batch; b++ {
						vIdx := []int{c}
						for d := range j {
							vIdx = append(vIdx, j[d]+k[d])
						}
						vIdx = append(vIdx, b)
						h := hidden.At(append(append([]int{mu}, k...), b)...)
						visible.Set(visible.At(vIdx...)+w*h, vIdx...)
					}
				}
			}
		}
	}
	return visible
}

func toFloats[T tensor.DType](t *tensor.Tensor[T]) []float64 {
	out := make([]float64, t.NumElements())
	for i, v := range t.Data() {
		out[i] = toFloat64(v)
	}
	return out
}
