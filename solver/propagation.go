package solver

import (
	"context"
	"fmt"

	"github.com/katalvlaran/rpq/cp"
	"github.com/katalvlaran/rpq/model"
)

// ConstraintPropagation solves the model with bounds propagation and
// depth-first branch-and-bound.
type ConstraintPropagation struct {
	opts Options
}

var _ Solver = (*ConstraintPropagation)(nil)

// NewConstraintPropagation returns the constraint-propagation adapter.
func NewConstraintPropagation(opts ...Option) *ConstraintPropagation {
	return &ConstraintPropagation{opts: buildOptions(opts)}
}

// Name implements Solver.
func (s *ConstraintPropagation) Name() string { return "constraint-propagation" }

// Solve implements Solver.
func (s *ConstraintPropagation) Solve(ctx context.Context, m *model.DecisionModel) (Result, error) {
	if m == nil {
		return Result{}, model.ErrNilModel
	}
	r := newRun(s.Name(), s.opts, m)
	r.log.Debug("posting model", "encoding", s.opts.Encoding.String())

	cm, err := toCP(m, s.opts.Encoding)
	if err != nil {
		return Result{Engine: s.Name(), RunID: r.id}, err
	}
	if seed := r.seed(m); seed != nil {
		for i, v := range seed {
			if err = cm.Hint(cp.VarID(i), v); err != nil {
				return Result{Engine: s.Name(), RunID: r.id}, err
			}
		}
	}

	out := cp.Solve(ctx, cm, cp.WithTimeLimit(s.opts.TimeLimit), cp.WithNodeLimit(s.opts.NodeLimit))

	var a model.Assignment
	if out.HasSolution {
		a = model.Assignment(out.Values)
	}
	st := Unproven
	switch out.Status {
	case cp.Optimal:
		st = Optimal
	case cp.Infeasible:
		st = Infeasible
	}

	return r.finish(ctx, m, st, a, out.Nodes)
}

// toCP posts m to a cp.Model with identical variable numbering.
func toCP(m *model.DecisionModel, enc Encoding) (*cp.Model, error) {
	cm := cp.NewModel()
	for _, v := range m.Vars() {
		if v.Kind == model.Boolean {
			cm.NewBoolVar(v.Name)
			continue
		}
		if _, err := cm.NewIntVar(v.Lo, v.Hi, v.Name); err != nil {
			return nil, err
		}
	}

	for _, c := range m.Constraints() {
		var err error
		if c.Kind == model.KindDisjunct && enc == EncodingNative {
			before, _ := m.Start(c.Before)
			after, _ := m.Start(c.After)
			err = cm.AddLinearIf(cp.VarID(c.Indicator), 0, []cp.Term{
				{Var: cp.VarID(before), Coef: 1},
				{Var: cp.VarID(after), Coef: -1},
			}, cp.LE, -c.Gap)
		} else {
			terms := make([]cp.Term, len(c.Terms))
			for i, t := range c.Terms {
				terms[i] = cp.Term{Var: cp.VarID(t.Var), Coef: t.Coef}
			}
			err = cm.AddLinear(terms, cpSense(c.Sense), c.RHS)
		}
		if err != nil {
			return nil, fmt.Errorf("posting %s constraint: %w", c.Kind, err)
		}
	}

	if err := cm.Minimize(cp.VarID(m.Goal().Var)); err != nil {
		return nil, err
	}

	return cm, nil
}

func cpSense(s model.Sense) cp.Sense {
	switch s {
	case model.LessEq:
		return cp.LE
	case model.GreaterEq:
		return cp.GE
	default:
		return cp.EQ
	}
}
