package milp

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/rpq/lp"
)

// Sentinel errors.
var (
	// ErrDimensionMismatch indicates len(Integer) ≠ number of variables.
	ErrDimensionMismatch = errors.New("milp: dimension mismatch")

	// ErrBadIncumbent indicates an incumbent that is not a feasible integer point.
	ErrBadIncumbent = errors.New("milp: incumbent is not feasible")
)

// Problem is an LP plus integrality marks.
type Problem struct {
	LP      lp.Problem
	Integer []bool
}

// Status of a branch-and-bound run.
type Status int

const (
	// Optimal means X is proven optimal.
	Optimal Status = iota
	// Infeasible means the whole tree was explored without an integer point.
	Infeasible
	// Unproven means a limit stopped the search; X holds the incumbent if HasSolution.
	Unproven
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unproven:
		return "unproven"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result of Solve.
type Result struct {
	Status       Status
	HasSolution  bool
	Objective    float64
	X            []float64
	Nodes        int
	LPIterations int
}

// Options configures Solve.
//
// TimeLimit      – 0 disables it.
// NodeLimit      – 0 disables it.
// Incumbent      – optional feasible integer point used for pruning.
// IntegralityTol – distance to the nearest integer accepted as integral.
// LP             – options of every relaxation solve.
type Options struct {
	TimeLimit      time.Duration
	NodeLimit      int
	Incumbent      []float64
	IntegralityTol float64
	LP             lp.Options
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns no limits, IntegralityTol 1e-6 and lp.DefaultOptions.
func DefaultOptions() Options {
	return Options{IntegralityTol: 1e-6, LP: lp.DefaultOptions()}
}

// WithTimeLimit bounds the wall-clock time of the search.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithNodeLimit bounds the number of explored nodes.
func WithNodeLimit(n int) Option {
	return func(o *Options) { o.NodeLimit = n }
}

// WithIncumbent seeds the search with a known feasible point.
func WithIncumbent(x []float64) Option {
	return func(o *Options) { o.Incumbent = append([]float64(nil), x...) }
}

// WithLPOptions overrides the relaxation solver options.
func WithLPOptions(lo lp.Options) Option {
	return func(o *Options) { o.LP = lo }
}
