package lp

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for malformed problems.
var (
	// ErrDimensionMismatch indicates inconsistent vector lengths or an empty problem.
	ErrDimensionMismatch = errors.New("lp: dimension mismatch")

	// ErrBadBounds indicates a non-finite lower bound or a −Inf upper bound.
	ErrBadBounds = errors.New("lp: invalid variable bounds")

	// ErrNaN indicates a NaN or infinite coefficient.
	ErrNaN = errors.New("lp: NaN or Inf coefficient")
)

// Sense is the comparison of a row.
type Sense int

const (
	// LE is a·x ≤ b.
	LE Sense = iota
	// GE is a·x ≥ b.
	GE
	// EQ is a·x = b.
	EQ
)

// Row is one linear constraint; len(Coefs) must equal the number of variables.
type Row struct {
	Coefs []float64
	Sense Sense
	RHS   float64
}

// Problem is a minimisation LP. Lower defaults to 0 and Upper to +Inf when nil.
type Problem struct {
	Costs []float64
	Rows  []Row
	Lower []float64
	Upper []float64
}

// NumVars returns the number of structural variables.
func (p *Problem) NumVars() int { return len(p.Costs) }

// Status is the outcome of Solve.
type Status int

const (
	// Optimal means X is a minimiser.
	Optimal Status = iota
	// Infeasible means no point satisfies the rows and bounds.
	Infeasible
	// Unbounded means the objective decreases without limit.
	Unbounded
	// IterationLimit means Options.MaxIterations pivots were spent or
	// Options.Done was closed.
	IterationLimit
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case IterationLimit:
		return "iteration-limit"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Solution is the result of Solve. X and Objective are meaningful only when
// Status == Optimal.
type Solution struct {
	Status     Status
	Objective  float64
	X          []float64
	Iterations int
}

// Options tunes the simplex.
//
// Tolerance     – magnitudes at or below it are treated as zero.
// MaxIterations – pivot budget over both phases.
// Done          – when closed, Solve stops within doneCheckEvery pivots.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Done          <-chan struct{}
}

// DefaultOptions returns Tolerance 1e-9 and MaxIterations 100000.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-9, MaxIterations: 100000}
}

// validate checks shapes and numeric sanity of p.
func (p *Problem) validate() error {
	n := len(p.Costs)
	if n == 0 {
		return fmt.Errorf("%w: no variables", ErrDimensionMismatch)
	}
	if p.Lower != nil && len(p.Lower) != n {
		return fmt.Errorf("%w: %d lower bounds for %d variables", ErrDimensionMismatch, len(p.Lower), n)
	}
	if p.Upper != nil && len(p.Upper) != n {
		return fmt.Errorf("%w: %d upper bounds for %d variables", ErrDimensionMismatch, len(p.Upper), n)
	}
	for j, c := range p.Costs {
		if !finite(c) {
			return fmt.Errorf("%w: cost %d", ErrNaN, j)
		}
	}
	for i, r := range p.Rows {
		if len(r.Coefs) != n {
			return fmt.Errorf("%w: row %d has %d coefficients, want %d", ErrDimensionMismatch, i, len(r.Coefs), n)
		}
		if !finite(r.RHS) {
			return fmt.Errorf("%w: rhs of row %d", ErrNaN, i)
		}
		for j, a := range r.Coefs {
			if !finite(a) {
				return fmt.Errorf("%w: row %d column %d", ErrNaN, i, j)
			}
		}
	}
	for j := 0; j < n; j++ {
		if !finite(p.lower(j)) {
			return fmt.Errorf("%w: lower bound of variable %d", ErrBadBounds, j)
		}
		if u := p.upper(j); math.IsNaN(u) || math.IsInf(u, -1) {
			return fmt.Errorf("%w: upper bound of variable %d", ErrBadBounds, j)
		}
	}

	return nil
}

func (p *Problem) lower(j int) float64 {
	if p.Lower == nil {
		return 0
	}

	return p.Lower[j]
}

func (p *Problem) upper(j int) float64 {
	if p.Upper == nil {
		return math.Inf(1)
	}

	return p.Upper[j]
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
