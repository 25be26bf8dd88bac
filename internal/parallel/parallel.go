// Package parallel provides chunked parallel loops over disjoint index ranges.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum number of goroutines running at once.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
	MinWork      int  // Minimum work units per goroutine, used by ForWork.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,      // Typical cache line aware chunk.
		MinWork:      1 << 14, // Below this a goroutine costs more than the loop.
	}
}

// Sequential returns a Config that always runs on the calling goroutine.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1}
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
//
// Each index is handed to exactly one goroutine, so f may write to any
// location owned by index i without synchronization. For returns after every
// call to f has returned.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= cfg.MinChunkSize {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				f(i)
			}
			return nil
		})
	}
	_ = g.Wait() // f cannot fail
}

// ForWork is For for coarse items: each call to f performs about cost units
// of work, and chunks are sized so that each goroutine gets at least
// cfg.MinWork units.
func ForWork(n, cost int, f func(i int), cfg Config) {
	cost = max(cost, 1)
	cfg.MinChunkSize = max((cfg.MinWork+cost-1)/cost, 1)
	For(n, f, cfg)
}
