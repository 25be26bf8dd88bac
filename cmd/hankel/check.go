package main

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/hankel/hankel"
	"github.com/born-ml/hankel/tensor"
)

const tolerance = 1e-9

type checkOptions struct {
	ranks    []int
	channels int
	kernel   int
	input    int
	batch    int
	units    int
	seed     uint64
	workers  int
}

// checkResult is one row of the check report.
type checkResult struct {
	rank   int
	name   string
	ok     bool
	detail string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify view and contraction identities on random tensors",
		Long: "Check builds random tensors for each spatial rank and verifies that\n" +
			"materialization agrees with the view, that Backward is the adjoint of\n" +
			"Forward, that Forward equals the window matrix product, and that\n" +
			"parallel and sequential runs agree.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := runChecks(opts)
			if err != nil {
				return err
			}
			writeReport(cmd, results)

			failed := 0
			for _, r := range results {
				if !r.ok {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&opts.ranks, "rank", []int{1, 2, 3, 4}, "spatial ranks to check")
	cmd.Flags().IntVar(&opts.channels, "channels", 2, "number of channels")
	cmd.Flags().IntVar(&opts.kernel, "kernel", 2, "window size on every spatial axis")
	cmd.Flags().IntVar(&opts.input, "input", 4, "input size on every spatial axis")
	cmd.Flags().IntVar(&opts.batch, "batch", 2, "batch size")
	cmd.Flags().IntVar(&opts.units, "units", 3, "hidden units")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "random seed")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "worker goroutines (0 for one per CPU)")

	return cmd
}

func (o checkOptions) parallel() hankel.ParallelConfig {
	cfg := hankel.DefaultParallel()
	if o.workers > 0 {
		cfg.Enabled = o.workers > 1
		cfg.NumWorkers = o.workers
	}
	// Split even the small check tensors so the parallel path is exercised.
	cfg.MinChunkSize = 1
	cfg.MinWork = 1
	return cfg
}

// problem is one random contraction instance of a given spatial rank.
type problem struct {
	kernel  tensor.Shape
	weight  *tensor.Tensor[float64]
	visible *tensor.Tensor[float64]
	hidden  *tensor.Tensor[float64]
}

func newProblem(o checkOptions, rank int, rng *rand.Rand) problem {
	kernel := make(tensor.Shape, rank)
	input := make(tensor.Shape, rank)
	output := make(tensor.Shape, rank)
	for d := range kernel {
		kernel[d], input[d] = o.kernel, o.input
		output[d] = o.input - o.kernel + 1
	}
	return problem{
		kernel:  kernel,
		weight:  tensor.Rand[float64](tensor.Concat(tensor.Shape{o.channels}, kernel, tensor.Shape{o.units}), rng),
		visible: tensor.Rand[float64](tensor.Concat(tensor.Shape{o.channels}, input, tensor.Shape{o.batch}), rng),
		hidden:  tensor.Rand[float64](tensor.Concat(tensor.Shape{o.units}, output, tensor.Shape{o.batch}), rng),
	}
}

func runChecks(o checkOptions) ([]checkResult, error) {
	if o.kernel < 1 || o.kernel > o.input {
		return nil, fmt.Errorf("%w: kernel %d, input %d", hankel.ErrInvalidWindowSize, o.kernel, o.input)
	}

	rng := rand.New(rand.NewPCG(o.seed, o.seed)) //nolint:gosec // reproducible test data
	par := hankel.WithParallel(o.parallel())
	seq := hankel.WithParallel(hankel.Sequential())

	var results []checkResult
	for _, rank := range o.ranks {
		if rank < 1 {
			return nil, fmt.Errorf("rank must be positive, got %d", rank)
		}
		p := newProblem(o, rank, rng)
		slog.Debug("checking", "rank", rank, "weight", p.weight.Shape(), "visible", p.visible.Shape())

		checks := []struct {
			name string
			fn   func(problem, hankel.Option, hankel.Option) (bool, string, error)
		}{
			{"view = materialize", checkMaterialize},
			{"adjoint identity", checkAdjoint},
			{"forward = Wᵀ·X", checkMatMul},
			{"parallel = sequential", checkParallel},
		}

		for _, c := range checks {
			ok, detail, err := c.fn(p, par, seq)
			if err != nil {
				return nil, fmt.Errorf("rank %d, %s: %w", rank, c.name, err)
			}
			slog.Debug("check done", "rank", rank, "check", c.name, "ok", ok, "detail", detail)
			results = append(results, checkResult{rank: rank, name: c.name, ok: ok, detail: detail})
		}
	}
	return results, nil
}

func checkMaterialize(p problem, par, _ hankel.Option) (bool, string, error) {
	channel := p.visible.Shape()[:1]
	v, err := hankel.NewView(p.visible, channel, p.kernel)
	if err != nil {
		return false, "", err
	}
	dense, err := hankel.Materialize(p.visible, channel, p.kernel, par)
	if err != nil {
		return false, "", err
	}
	return hankel.Equal[float64](v, dense), fmt.Sprintf("%d elements", dense.NumElements()), nil
}

func checkAdjoint(p problem, par, _ hankel.Option) (bool, string, error) {
	fwd, err := hankel.ConvForward(p.weight, p.visible, par)
	if err != nil {
		return false, "", err
	}
	bwd, err := hankel.ConvBackward(p.weight, p.hidden, par)
	if err != nil {
		return false, "", err
	}

	lhs := floats.Dot(p.visible.Data(), bwd.Data())
	rhs := floats.Dot(p.hidden.Data(), fwd.Data())
	diff := math.Abs(lhs - rhs)
	return diff <= tolerance*max(1, math.Abs(lhs)), "|Δ| = " + strconv.FormatFloat(diff, 'g', 3, 64), nil
}

func checkMatMul(p problem, par, _ hankel.Option) (bool, string, error) {
	v, err := hankel.NewView(p.visible, p.visible.Shape()[:1], p.kernel)
	if err != nil {
		return false, "", err
	}
	x := hankel.Dense(v, par)
	rows, _ := x.Dims()
	units := p.weight.Shape()[len(p.weight.Shape())-1]
	w := mat.NewDense(rows, units, p.weight.Data())

	var want mat.Dense
	want.Mul(w.T(), x)

	got, err := hankel.ConvForward(p.weight, p.visible, par)
	if err != nil {
		return false, "", err
	}
	ok := floats.EqualApprox(want.RawMatrix().Data, got.Data(), tolerance)
	r, c := want.Dims()
	return ok, fmt.Sprintf("%d×%d", r, c), nil
}

func checkParallel(p problem, par, seq hankel.Option) (bool, string, error) {
	a, err := hankel.Backward(p.weight.Raw(), p.hidden.Raw(), par)
	if err != nil {
		return false, "", err
	}
	b, err := hankel.Backward(p.weight.Raw(), p.hidden.Raw(), seq)
	if err != nil {
		return false, "", err
	}
	return floats.Equal(a.AsFloat64(), b.AsFloat64()), "backward", nil
}

func writeReport(cmd *cobra.Command, results []checkResult) {
	data := make([][]string, 0, len(results))
	for _, r := range results {
		status := "ok"
		if !r.ok {
			status = "FAIL"
		}
		data = append(data, []string{strconv.Itoa(r.rank), r.name, status, r.detail})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"RANK", "CHECK", "RESULT", "DETAIL"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}
