package cp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/cp"
)

func mustInt(t *testing.T, m *cp.Model, lo, hi int, name string) cp.VarID {
	t.Helper()
	v, err := m.NewIntVar(lo, hi, name)
	require.NoError(t, err)

	return v
}

func TestSolve_LinearOptimum(t *testing.T) {
	m := cp.NewModel()
	x := mustInt(t, m, 0, 10, "x")
	y := mustInt(t, m, 0, 10, "y")
	require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, cp.GE, 7))
	require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}, {Var: y, Coef: -1}}, cp.EQ, 1))
	require.NoError(t, m.Minimize(x))

	res := cp.Solve(context.Background(), m)
	require.Equal(t, cp.Optimal, res.Status)
	require.True(t, res.HasSolution)
	require.Equal(t, 4, res.Objective)
	require.Equal(t, []int{4, 3}, res.Values)
	require.Equal(t, 3, m.NumConstraints())
}

func TestSolve_Infeasible(t *testing.T) {
	m := cp.NewModel()
	x := mustInt(t, m, 0, 3, "x")
	require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}}, cp.GE, 5))

	res := cp.Solve(context.Background(), m)
	require.Equal(t, cp.Infeasible, res.Status)
	require.False(t, res.HasSolution)
}

func TestSolve_HalfReified(t *testing.T) {
	build := func() (*cp.Model, cp.VarID, cp.VarID) {
		m := cp.NewModel()
		b := m.NewBoolVar("b")
		x := mustInt(t, m, 0, 10, "x")
		require.NoError(t, m.AddLinearIf(b, 1, []cp.Term{{Var: x, Coef: 1}}, cp.GE, 8))
		require.NoError(t, m.AddLinearIf(b, 0, []cp.Term{{Var: x, Coef: 1}}, cp.LE, 2))
		require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}}, cp.GE, 1))
		require.NoError(t, m.Minimize(x))

		return m, b, x
	}

	m, b, x := build()
	res := cp.Solve(context.Background(), m)
	require.Equal(t, cp.Optimal, res.Status)
	require.Equal(t, 0, res.Values[b])
	require.Equal(t, 1, res.Values[x])

	// x ≥ 5 rules out the b = 0 branch, so propagation must fix b = 1.
	m, b, x = build()
	require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}}, cp.GE, 5))
	res = cp.Solve(context.Background(), m)
	require.Equal(t, cp.Optimal, res.Status)
	require.Equal(t, 1, res.Values[b])
	require.Equal(t, 8, res.Objective)
}

func TestSolve_HintOrdersBooleans(t *testing.T) {
	build := func() (*cp.Model, cp.VarID, cp.VarID) {
		m := cp.NewModel()
		b1, b2 := m.NewBoolVar("b1"), m.NewBoolVar("b2")
		require.NoError(t, m.AddLinear([]cp.Term{{Var: b1, Coef: 1}, {Var: b2, Coef: 1}}, cp.EQ, 1))

		return m, b1, b2
	}

	m, b1, b2 := build()
	res := cp.Solve(context.Background(), m)
	require.Equal(t, cp.Optimal, res.Status)
	require.Equal(t, []int{0, 1}, []int{res.Values[b1], res.Values[b2]})

	m, b1, b2 = build()
	require.NoError(t, m.Hint(b1, 1))
	res = cp.Solve(context.Background(), m)
	require.Equal(t, []int{1, 0}, []int{res.Values[b1], res.Values[b2]})
	require.Equal(t, 1, res.Solutions)
}

// Two tasks on one machine, disjunction by a precedence literal.
func TestSolve_Disjunctive(t *testing.T) {
	m := cp.NewModel()
	s0 := mustInt(t, m, 0, 20, "s0")
	s1 := mustInt(t, m, 0, 20, "s1")
	end := mustInt(t, m, 0, 20, "end")
	b := m.NewBoolVar("s0 first")
	// s0 + 3 ≤ s1 when b, s1 + 2 ≤ s0 otherwise.
	require.NoError(t, m.AddLinearIf(b, 1, []cp.Term{{Var: s0, Coef: 1}, {Var: s1, Coef: -1}}, cp.LE, -3))
	require.NoError(t, m.AddLinearIf(b, 0, []cp.Term{{Var: s1, Coef: 1}, {Var: s0, Coef: -1}}, cp.LE, -2))
	require.NoError(t, m.AddLinear([]cp.Term{{Var: end, Coef: 1}, {Var: s0, Coef: -1}}, cp.GE, 3))
	require.NoError(t, m.AddLinear([]cp.Term{{Var: end, Coef: 1}, {Var: s1, Coef: -1}}, cp.GE, 2+6))
	require.NoError(t, m.Minimize(end))

	res := cp.Solve(context.Background(), m)
	require.Equal(t, cp.Optimal, res.Status)
	// s0 first: s1 = 3, end = 11; s1 first: s0 = 2, end = max(5, 8) = 8.
	require.Equal(t, 8, res.Objective)
	require.Equal(t, 0, res.Values[b])
}

func TestSolve_Limits(t *testing.T) {
	build := func() *cp.Model {
		m := cp.NewModel()
		x := mustInt(t, m, 0, 10, "x")
		y := mustInt(t, m, 0, 10, "y")
		require.NoError(t, m.AddLinear([]cp.Term{{Var: x, Coef: 1}, {Var: y, Coef: 1}}, cp.GE, 7))
		require.NoError(t, m.Minimize(x))

		return m
	}

	res := cp.Solve(context.Background(), build(), cp.WithNodeLimit(1))
	require.Equal(t, cp.Unproven, res.Status)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = cp.Solve(ctx, build())
	require.Equal(t, cp.Unproven, res.Status)
	require.Zero(t, res.Nodes)
}

func TestModel_Errors(t *testing.T) {
	m := cp.NewModel()
	_, err := m.NewIntVar(5, 1, "bad")
	require.ErrorIs(t, err, cp.ErrEmptyDomain)

	x := mustInt(t, m, 0, 3, "x")
	b := m.NewBoolVar("b")
	require.Equal(t, "x", m.Name(x))
	require.Equal(t, 2, m.NumVars())

	require.ErrorIs(t, m.AddLinear([]cp.Term{{Var: 9, Coef: 1}}, cp.LE, 0), cp.ErrUnknownVar)
	require.ErrorIs(t, m.AddLinearIf(x, 1, nil, cp.LE, 0), cp.ErrNotBoolean)
	require.ErrorIs(t, m.AddLinearIf(b, 2, nil, cp.LE, 0), cp.ErrNotBoolean)
	require.ErrorIs(t, m.AddLinearIf(7, 1, nil, cp.LE, 0), cp.ErrUnknownVar)
	require.ErrorIs(t, m.Minimize(-1), cp.ErrUnknownVar)
	require.ErrorIs(t, m.Hint(4, 0), cp.ErrUnknownVar)
}
