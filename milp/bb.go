package milp

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/rpq/lp"
)

// bbEngine holds the search state of one Solve call.
type bbEngine struct {
	ctx  context.Context
	p    *Problem
	opts Options

	lower []float64
	upper []float64
	scale []float64 // max(1, max_i |a_ij|) per column

	integralObj bool
	nodes       int
	lpIters     int
	stopped     bool // a limit fired
	incomplete  bool // some subtree could not be settled

	hasBest bool
	best    float64
	bestX   []float64
}

// Solve runs depth-first branch-and-bound on p.
//
// Errors:
//   - ErrDimensionMismatch for a bad Integer slice; lp validation errors.
//   - ErrBadIncumbent when WithIncumbent supplied an infeasible point.
//
// Limits and cancellation are not errors; they yield Status Unproven.
func Solve(ctx context.Context, p *Problem, opts ...Option) (Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := p.LP.NumVars()
	if len(p.Integer) != n {
		return Result{}, fmt.Errorf("%w: %d integrality marks for %d variables", ErrDimensionMismatch, len(p.Integer), n)
	}
	if o.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.TimeLimit)
		defer cancel()
	}

	e := &bbEngine{
		ctx:         ctx,
		p:           p,
		opts:        o,
		lower:       make([]float64, n),
		upper:       make([]float64, n),
		scale:       columnScale(p),
		integralObj: integralObjective(p),
	}
	if e.opts.LP.Done == nil {
		e.opts.LP.Done = ctx.Done()
	}
	for j := 0; j < n; j++ {
		e.lower[j], e.upper[j] = 0, math.Inf(1)
		if p.LP.Lower != nil {
			e.lower[j] = p.LP.Lower[j]
		}
		if p.LP.Upper != nil {
			e.upper[j] = p.LP.Upper[j]
		}
	}

	if o.Incumbent != nil {
		if err := e.acceptIncumbent(o.Incumbent); err != nil {
			return Result{}, err
		}
	}

	if err := e.branch(); err != nil {
		return Result{}, err
	}

	res := Result{
		HasSolution:  e.hasBest,
		Objective:    e.best,
		X:            e.bestX,
		Nodes:        e.nodes,
		LPIterations: e.lpIters,
	}
	switch {
	case e.stopped || e.incomplete:
		res.Status = Unproven
	case e.hasBest:
		res.Status = Optimal
	default:
		res.Status = Infeasible
	}

	return res, nil
}

// integralObjective reports whether every feasible integer point has an
// integral objective value.
func integralObjective(p *Problem) bool {
	for j, c := range p.LP.Costs {
		if c == 0 {
			continue
		}
		if !p.Integer[j] || c != math.Trunc(c) {
			return false
		}
	}

	return true
}

// columnScale returns the largest coefficient magnitude of every column,
// floored at 1. A fractional part d of variable j moves some row by up to
// d·scale[j].
func columnScale(p *Problem) []float64 {
	scale := make([]float64, p.LP.NumVars())
	for j := range scale {
		scale[j] = 1
	}
	for _, r := range p.LP.Rows {
		if len(r.Coefs) != len(scale) {
			continue
		}
		for j, a := range r.Coefs {
			scale[j] = math.Max(scale[j], math.Abs(a))
		}
	}

	return scale
}

// limitHit reports whether the context expired or the node budget is spent.
func (e *bbEngine) limitHit() bool {
	if e.ctx.Err() != nil {
		return true
	}

	return e.opts.NodeLimit > 0 && e.nodes >= e.opts.NodeLimit
}

func (e *bbEngine) branch() error {
	if e.stopped {
		return nil
	}
	if e.limitHit() {
		e.stopped = true
		return nil
	}
	e.nodes++

	sol, err := lp.Solve(&lp.Problem{
		Costs: e.p.LP.Costs,
		Rows:  e.p.LP.Rows,
		Lower: e.lower,
		Upper: e.upper,
	}, e.opts.LP)
	if err != nil {
		return err
	}
	e.lpIters += sol.Iterations

	switch sol.Status {
	case lp.Infeasible:
		return nil
	case lp.Unbounded, lp.IterationLimit:
		e.incomplete = true
		return nil
	}

	bound := sol.Objective
	if e.integralObj {
		bound = math.Ceil(bound - e.opts.IntegralityTol)
	}
	if e.hasBest && bound >= e.best-e.opts.IntegralityTol {
		return nil
	}

	j := e.mostFractional(sol.X)
	if j < 0 {
		xs := e.snap(sol.X)
		if row, _ := e.violatedRow(xs); row < 0 {
			e.record(xs)
			return nil
		}
		// Rounding broke a row: branch on whatever is not exactly integral.
		if j = e.farthestFromIntegral(sol.X); j < 0 {
			e.incomplete = true
			return nil
		}
	}

	var (
		v       = sol.X[j]
		fl      = math.Floor(v)
		downFst = v-fl < 0.5
	)
	for k := 0; k < 2; k++ {
		if (k == 0) == downFst {
			saved := e.upper[j]
			e.upper[j] = fl
			err = e.branch()
			e.upper[j] = saved
		} else {
			saved := e.lower[j]
			e.lower[j] = fl + 1
			err = e.branch()
			e.lower[j] = saved
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// mostFractional returns the integer variable whose fractional part, scaled
// by its column magnitude, is largest and above IntegralityTol, or -1.
func (e *bbEngine) mostFractional(x []float64) int {
	return e.fractional(x, e.opts.IntegralityTol)
}

// farthestFromIntegral is mostFractional without the tolerance.
func (e *bbEngine) farthestFromIntegral(x []float64) int {
	return e.fractional(x, 0)
}

func (e *bbEngine) fractional(x []float64, tol float64) int {
	var (
		best  = -1
		bestD = tol
	)
	for j, v := range x {
		if !e.p.Integer[j] {
			continue
		}
		fl := math.Floor(v)
		if fl >= e.upper[j] || fl+1 <= e.lower[j] {
			// Rounding noise past a bound; neither branch would cut.
			continue
		}
		f := v - fl
		d := math.Min(f, 1-f) * e.scale[j]
		if d > bestD {
			best, bestD = j, d
		}
	}

	return best
}

// snap returns a copy of x with integer variables rounded.
func (e *bbEngine) snap(x []float64) []float64 {
	xs := append([]float64(nil), x...)
	for j := range xs {
		if e.p.Integer[j] {
			xs[j] = math.Round(xs[j])
		}
	}

	return xs
}

// violatedRow returns the index and activity of the first row x breaks,
// or -1 when every row holds.
func (e *bbEngine) violatedRow(x []float64) (int, float64) {
	tol := e.opts.IntegralityTol
	for i, r := range e.p.LP.Rows {
		var act float64
		for j, a := range r.Coefs {
			act += a * x[j]
		}
		var ok bool
		switch r.Sense {
		case lp.LE:
			ok = act <= r.RHS+tol
		case lp.GE:
			ok = act >= r.RHS-tol
		default:
			ok = math.Abs(act-r.RHS) <= tol
		}
		if !ok {
			return i, act
		}
	}

	return -1, 0
}

// record stores the integral point x as the new incumbent if it improves.
func (e *bbEngine) record(x []float64) {
	var obj float64
	for j, v := range x {
		obj += e.p.LP.Costs[j] * v
	}
	if e.hasBest && obj >= e.best {
		return
	}
	e.hasBest, e.best, e.bestX = true, obj, x
}

// acceptIncumbent verifies x against bounds, integrality and rows.
func (e *bbEngine) acceptIncumbent(x []float64) error {
	if len(x) != len(e.lower) {
		return fmt.Errorf("%w: %d values for %d variables", ErrBadIncumbent, len(x), len(e.lower))
	}
	tol := e.opts.IntegralityTol
	for j, v := range x {
		if v < e.lower[j]-tol || v > e.upper[j]+tol {
			return fmt.Errorf("%w: variable %d=%g outside bounds", ErrBadIncumbent, j, v)
		}
		if e.p.Integer[j] && math.Abs(v-math.Round(v)) > tol {
			return fmt.Errorf("%w: variable %d=%g not integral", ErrBadIncumbent, j, v)
		}
	}
	if i, act := e.violatedRow(x); i >= 0 {
		return fmt.Errorf("%w: row %d activity %g violates rhs %g", ErrBadIncumbent, i, act, e.p.LP.Rows[i].RHS)
	}
	e.record(e.snap(x))

	return nil
}
