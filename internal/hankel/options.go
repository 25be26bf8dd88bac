package hankel

import "github.com/born-ml/hankel/internal/parallel"

// Option configures a materialization or contraction call.
type Option func(*options)

type options struct {
	parallel parallel.Config
}

// WithParallel sets how work is split across goroutines.
// Use parallel.Sequential() to run on the calling goroutine.
func WithParallel(cfg parallel.Config) Option {
	return func(o *options) {
		o.parallel = cfg
	}
}

func newOptions(opts []Option) options {
	o := options{parallel: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
