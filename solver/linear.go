package solver

import (
	"context"
	"math"

	"github.com/katalvlaran/rpq/lp"
	"github.com/katalvlaran/rpq/milp"
	"github.com/katalvlaran/rpq/model"
)

// LinearInteger solves the model with LP relaxation and branch-and-bound.
type LinearInteger struct {
	opts Options
}

var _ Solver = (*LinearInteger)(nil)

// NewLinearInteger returns the linear-integer adapter.
func NewLinearInteger(opts ...Option) *LinearInteger {
	return &LinearInteger{opts: buildOptions(opts)}
}

// Name implements Solver.
func (s *LinearInteger) Name() string { return "linear-integer" }

// Solve implements Solver.
func (s *LinearInteger) Solve(ctx context.Context, m *model.DecisionModel) (Result, error) {
	if m == nil {
		return Result{}, model.ErrNilModel
	}
	r := newRun(s.Name(), s.opts, m)

	p := toMILP(m)
	opts := []milp.Option{
		milp.WithTimeLimit(s.opts.TimeLimit),
		milp.WithNodeLimit(s.opts.NodeLimit),
	}
	if seed := r.seed(m); seed != nil {
		x := make([]float64, len(seed))
		for i, v := range seed {
			x[i] = float64(v)
		}
		opts = append(opts, milp.WithIncumbent(x))
	}

	out, err := milp.Solve(ctx, p, opts...)
	if err != nil {
		return Result{Engine: s.Name(), RunID: r.id}, err
	}

	var a model.Assignment
	if out.HasSolution {
		a = make(model.Assignment, len(out.X))
		for i, v := range out.X {
			a[i] = int(math.Round(v))
		}
	}
	st := Unproven
	switch out.Status {
	case milp.Optimal:
		st = Optimal
	case milp.Infeasible:
		st = Infeasible
	}

	return r.finish(ctx, m, st, a, out.Nodes)
}

// toMILP posts every variable and constraint of m verbatim.
func toMILP(m *model.DecisionModel) *milp.Problem {
	var (
		vars = m.Vars()
		n    = len(vars)
		p    = &milp.Problem{
			LP: lp.Problem{
				Costs: make([]float64, n),
				Lower: make([]float64, n),
				Upper: make([]float64, n),
			},
			Integer: make([]bool, n),
		}
	)
	for _, v := range vars {
		p.LP.Lower[v.ID] = float64(v.Lo)
		p.LP.Upper[v.ID] = float64(v.Hi)
		p.Integer[v.ID] = true
	}
	p.LP.Costs[m.Goal().Var] = 1

	for _, c := range m.Constraints() {
		row := lp.Row{Coefs: make([]float64, n), RHS: float64(c.RHS)}
		for _, t := range c.Terms {
			row.Coefs[t.Var] += float64(t.Coef)
		}
		switch c.Sense {
		case model.LessEq:
			row.Sense = lp.LE
		case model.GreaterEq:
			row.Sense = lp.GE
		default:
			row.Sense = lp.EQ
		}
		p.LP.Rows = append(p.LP.Rows, row)
	}

	return p
}
