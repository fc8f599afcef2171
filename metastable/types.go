package metastable

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel errors returned by Sample.
var (
	// ErrEmptyPool indicates no candidate with NumA below the reference.
	ErrEmptyPool = errors.New("metastable: no candidate below the reference")

	// ErrNoDelithiated indicates a pool without a NumA = 0 phase, so no
	// path can terminate.
	ErrNoDelithiated = errors.New("metastable: pool has no fully delithiated phase")

	// ErrRetryExceeded indicates that the selector found no monotonic next
	// phase within its retry bound.
	ErrRetryExceeded = errors.New("metastable: retry bound exceeded without a monotonic step")

	// ErrNonMonotonic indicates a selector that returned a phase whose NumA
	// is not below the current one.
	ErrNonMonotonic = errors.New("metastable: selector broke NumA monotonicity")

	// ErrBadOptions indicates invalid sampler options.
	ErrBadOptions = errors.New("metastable: invalid options")
)

// Defaults of the sampler.
const (
	DefaultGridSize    = 100
	DefaultMaxCapacity = 2000.0 // mAh/g
	DefaultWindow      = 3
	DefaultMaxTrials   = 100000
	DefaultMaxRetries  = 1000
	DefaultBatchSize   = 8

	// TolerancePerPoint scales the default convergence tolerance with the
	// grid size.
	TolerancePerPoint = 1e-9
)

// DefaultTolerance returns the default convergence tolerance of a grid with
// gridSize points.
func DefaultTolerance(gridSize int) float64 {
	return TolerancePerPoint * float64(gridSize)
}

// Candidate is one phase available to a path.
type Candidate struct {
	Label        string
	NumA         float64 // moles of A per B; +Inf at pure A
	EnthalpyPerB float64 // eV per B
	Capacity     float64 // mAh/g
}

// PathState is the state of a single discharge path.
type PathState int

const (
	AtReference PathState = iota
	Walking
	Delithiated
	Aborted
)

func (s PathState) String() string {
	switch s {
	case AtReference:
		return "at_reference"
	case Walking:
		return "walking"
	case Delithiated:
		return "delithiated"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("PathState(%d)", int(s))
	}
}

// ConvergenceState is the state of the running average.
type ConvergenceState int

const (
	Accumulating ConvergenceState = iota
	Converged
)

func (s ConvergenceState) String() string {
	if s == Converged {
		return "converged"
	}

	return "accumulating"
}

// Segment is one step of a path: Voltage is the voltage of the move that
// arrived at a phase of the given Capacity.
type Segment struct {
	Capacity float64
	Voltage  float64
}

// Path is one sampled discharge path. Steps holds indices into
// Result.Pool, in walk order.
type Path struct {
	Steps    []int
	Segments []Segment
	State    PathState
}

// Observer receives sampler progress. Calls are made from the reducing
// goroutine only, in trial order.
type Observer interface {
	// OnPath is called once per finished trial with its final state.
	OnPath(state PathState)
	// OnBatch is called after each batch with the total number of trials
	// so far and the L1 change of the running average.
	OnBatch(trials int, delta float64)
}

// Options configures Sample.
//
//   - Seed        - base seed; 0 selects a fixed default stream.
//   - GridSize    - number of capacity grid points (≥ 2).
//   - MaxCapacity - upper end of the capacity grid in mAh/g.
//   - Tolerance   - L1 threshold of the per-batch change of the average.
//   - Window      - consecutive quiet batches required to converge.
//   - MaxTrials   - hard cap on sampled paths.
//   - MaxRetries  - retry bound of the default selector.
//   - Workers     - goroutines per batch.
//   - BatchSize   - trials per convergence check.
//   - KeepPaths   - keep every sampled path in Result.Paths.
//   - MuA         - chemical potential of A in eV/atom.
//   - Selector    - selection strategy; nil uses UniformMonotonic.
//   - Observer    - optional progress hook.
type Options struct {
	Seed        int64
	GridSize    int
	MaxCapacity float64
	Tolerance   float64
	Window      int
	MaxTrials   int
	MaxRetries  int
	Workers     int
	BatchSize   int
	KeepPaths   bool
	MuA         float64
	Selector    Selector
	Observer    Observer
}

// DefaultOptions returns the documented defaults with Workers set to
// GOMAXPROCS.
func DefaultOptions() Options {
	return Options{
		GridSize:    DefaultGridSize,
		MaxCapacity: DefaultMaxCapacity,
		Tolerance:   DefaultTolerance(DefaultGridSize),
		Window:      DefaultWindow,
		MaxTrials:   DefaultMaxTrials,
		MaxRetries:  DefaultMaxRetries,
		Workers:     runtime.GOMAXPROCS(0),
		BatchSize:   DefaultBatchSize,
	}
}

// Validate checks o and reports the first invalid field.
func (o Options) Validate() error {
	switch {
	case o.GridSize < 2:
		return fmt.Errorf("%w: GridSize %d < 2", ErrBadOptions, o.GridSize)
	case !(o.MaxCapacity > 0):
		return fmt.Errorf("%w: MaxCapacity %g", ErrBadOptions, o.MaxCapacity)
	case !(o.Tolerance >= 0):
		return fmt.Errorf("%w: Tolerance %g", ErrBadOptions, o.Tolerance)
	case o.Window < 1:
		return fmt.Errorf("%w: Window %d", ErrBadOptions, o.Window)
	case o.MaxTrials < 1:
		return fmt.Errorf("%w: MaxTrials %d", ErrBadOptions, o.MaxTrials)
	case o.Selector == nil && o.MaxRetries < 1:
		return fmt.Errorf("%w: MaxRetries %d", ErrBadOptions, o.MaxRetries)
	case o.Workers < 1:
		return fmt.Errorf("%w: Workers %d", ErrBadOptions, o.Workers)
	case o.BatchSize < 1:
		return fmt.Errorf("%w: BatchSize %d", ErrBadOptions, o.BatchSize)
	}

	return nil
}

// Result is the outcome of Sample.
type Result struct {
	Reference Candidate
	Pool      []Candidate // sorted by NumA

	Grid    []float64 // capacity grid in mAh/g
	Profile []float64 // averaged voltage on Grid

	Trials    int
	State     ConvergenceState
	Converged bool
	Delta     float64 // L1 change of the last batch

	Paths []Path // only with KeepPaths
}
