package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/born-ml/hankel/hankel"
	"github.com/born-ml/hankel/tensor"
)

// shapeOptions describes one source tensor on the command line.
// A zero channel or batch count means the tensor has no such axis.
type shapeOptions struct {
	channels int
	kernel   []int
	input    []int
	batch    int
	units    int
}

func (o shapeOptions) source() (tensor.Shape, tensor.Shape) {
	var channel, batch tensor.Shape
	if o.channels > 0 {
		channel = tensor.Shape{o.channels}
	}
	if o.batch > 0 {
		batch = tensor.Shape{o.batch}
	}
	return tensor.Concat(channel, o.input, batch), channel
}

func newShapeCmd() *cobra.Command {
	var opts shapeOptions

	cmd := &cobra.Command{
		Use:   "shape",
		Short: "Print the view and contraction shapes for a window",
		Example: "  hankel shape --channels 2 --kernel 2,3 --input 5,6 --batch 4\n" +
			"  hankel shape --kernel 3 --input 10 --units 8",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShape(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.channels, "channels", 1, "number of channels (0 for none)")
	cmd.Flags().IntSliceVar(&opts.kernel, "kernel", []int{2}, "window size per spatial axis")
	cmd.Flags().IntSliceVar(&opts.input, "input", []int{4}, "input size per spatial axis")
	cmd.Flags().IntVar(&opts.batch, "batch", 1, "batch size (0 for none)")
	cmd.Flags().IntVar(&opts.units, "units", 1, "hidden units of the contraction")

	return cmd
}

func runShape(cmd *cobra.Command, opts shapeOptions) error {
	if len(opts.kernel) != len(opts.input) {
		return fmt.Errorf("--kernel has %d axes but --input has %d", len(opts.kernel), len(opts.input))
	}

	source, channel := opts.source()
	slog.Debug("deriving geometry", "source", source, "channel", channel, "kernel", opts.kernel)

	g, err := hankel.NewGeometry(source, channel, opts.kernel)
	if err != nil {
		return err
	}

	flat := g.Flat()
	c, b := flat.Channel[0], flat.Batch[0]

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "geometry: %s\n", g)
	fmt.Fprintf(w, "source:   %v\n", g.SourceShape())
	fmt.Fprintf(w, "view:     %v\n", g.ViewShape())
	fmt.Fprintf(w, "weight:   %v\n", tensor.Concat(tensor.Shape{c}, g.Kernel, tensor.Shape{opts.units}))
	fmt.Fprintf(w, "visible:  %v\n", flat.SourceShape())
	fmt.Fprintf(w, "hidden:   %v\n", tensor.Concat(tensor.Shape{opts.units}, g.Output, tensor.Shape{b}))
	return nil
}
