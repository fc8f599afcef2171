package metastable

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hullvolt/internal/logger"
)

// accumulator is the running sum of resampled profiles.
type accumulator struct {
	sum []float64
	n   int
}

// add folds one profile into a and returns the L1 change of the mean.
func (a *accumulator) add(profiles [][]float64) float64 {
	var before = a.mean()
	var i int
	for _, p := range profiles {
		for i = range a.sum {
			a.sum[i] += p[i]
		}
		a.n++
	}

	var after = a.mean()
	var delta float64
	for i = range after {
		delta += math.Abs(after[i] - before[i])
	}

	return delta
}

func (a *accumulator) mean() []float64 {
	var out = make([]float64, len(a.sum))
	if a.n == 0 {
		return out
	}
	for i := range a.sum {
		out[i] = a.sum[i] / float64(a.n)
	}

	return out
}

// convergence tracks consecutive quiet batches.
type convergence struct {
	state     ConvergenceState
	quiet     int
	window    int
	tolerance float64
}

// observe records the change of one batch and returns the new state.
func (c *convergence) observe(delta float64) ConvergenceState {
	if c.state == Converged {
		return c.state
	}
	if delta < c.tolerance {
		c.quiet++
	} else {
		c.quiet = 0
	}
	if c.quiet >= c.window {
		c.state = Converged
	}

	return c.state
}

// Sample runs the metastable path sampler from ref over pool.
//
// Errors: ErrBadOptions, ErrEmptyPool, ErrNoDelithiated, ErrRetryExceeded,
// ErrNonMonotonic and ctx.Err() on cancellation. Hitting MaxTrials is not an
// error; Result.Converged is false.
//
// Fast path: when exactly one phase lies below the reference, every path is
// the same single step, so the pool is deterministic. Sample then runs one
// trial and reports Converged without consulting the convergence window.
func Sample(ctx context.Context, ref Candidate, pool []Candidate, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	var sel = opts.Selector
	if sel == nil {
		sel = UniformMonotonic{MaxRetries: opts.MaxRetries}
	}

	var sorted = append([]Candidate(nil), pool...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].NumA < sorted[j].NumA })

	var eligible int
	for _, c := range sorted {
		if c.NumA < ref.NumA {
			eligible++
		}
	}
	if eligible == 0 {
		return nil, ErrEmptyPool
	}
	if sorted[0].NumA != 0 {
		return nil, ErrNoDelithiated
	}
	// Deterministic pool: one phase below the reference, one possible path.
	var forced = eligible == 1

	var res = &Result{
		Reference: ref,
		Pool:      sorted,
		Grid:      Grid(opts.GridSize, opts.MaxCapacity),
	}
	var acc = accumulator{sum: make([]float64, opts.GridSize)}
	var conv = convergence{window: opts.Window, tolerance: opts.Tolerance}

	for res.Trials < opts.MaxTrials && conv.state != Converged {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var size = opts.BatchSize
		if forced {
			size = 1
		}
		if rest := opts.MaxTrials - res.Trials; size > rest {
			size = rest
		}

		paths, profiles, err := runBatch(ctx, res.Trials, size, ref, sorted, sel, res.Grid, opts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			notify(opts.Observer, paths)
			return nil, err
		}

		// Single-writer reduction in trial order.
		res.Delta = acc.add(profiles)
		res.Trials += size
		notify(opts.Observer, paths)
		if opts.KeepPaths {
			res.Paths = append(res.Paths, paths...)
		}
		if forced {
			conv.state = Converged
		} else {
			conv.observe(res.Delta)
		}
		if opts.Observer != nil {
			opts.Observer.OnBatch(res.Trials, res.Delta)
		}
	}

	res.Profile = acc.mean()
	res.State = conv.state
	res.Converged = conv.state == Converged
	if res.Converged {
		logger.Info("metastable: converged after %d paths (delta %g)", res.Trials, res.Delta)
	} else {
		logger.Warn("metastable: not converged after %d paths (delta %g, tolerance %g)",
			res.Trials, res.Delta, opts.Tolerance)
	}

	return res, nil
}

// runBatch samples trials [first, first+size) on up to opts.Workers
// goroutines. Slot b of the returned slices belongs to trial first+b.
func runBatch(
	ctx context.Context,
	first, size int,
	ref Candidate,
	pool []Candidate,
	sel Selector,
	grid []float64,
	opts Options,
) ([]Path, [][]float64, error) {
	var (
		paths    = make([]Path, size)
		profiles = make([][]float64, size)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for b := 0; b < size; b++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var rng = trialRNG(opts.Seed, first+b)
			p, err := walk(ref, pool, sel, rng, opts.MuA)
			paths[b] = p
			if err != nil {
				return err
			}
			profiles[b] = p.profile(grid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return paths, nil, err
	}

	return paths, profiles, nil
}

func notify(o Observer, paths []Path) {
	if o == nil {
		return
	}
	for _, p := range paths {
		if p.State != Delithiated && p.State != Aborted {
			continue
		}
		o.OnPath(p.State)
	}
}
