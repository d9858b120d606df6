package milp_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/lp"
	"github.com/katalvlaran/rpq/milp"
)

func knapsack() *milp.Problem {
	return &milp.Problem{
		LP: lp.Problem{
			Costs: []float64{-5, -4, -3},
			Rows: []lp.Row{
				{Coefs: []float64{2, 3, 1}, Sense: lp.LE, RHS: 5},
				{Coefs: []float64{4, 1, 2}, Sense: lp.LE, RHS: 11},
				{Coefs: []float64{3, 4, 2}, Sense: lp.LE, RHS: 8},
			},
			Upper: []float64{1, 1, 1},
		},
		Integer: []bool{true, true, true},
	}
}

// x + y ≤ 3.5 in the relaxation, 3 over the integers.
func halfPlane() *milp.Problem {
	return &milp.Problem{
		LP: lp.Problem{
			Costs: []float64{-1, -1},
			Rows:  []lp.Row{{Coefs: []float64{2, 2}, Sense: lp.LE, RHS: 7}},
		},
		Integer: []bool{true, true},
	}
}

func TestSolve_Knapsack(t *testing.T) {
	res, err := milp.Solve(context.Background(), knapsack())
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	require.True(t, res.HasSolution)
	require.InDelta(t, -9, res.Objective, 1e-9)
	require.Equal(t, []float64{1, 1, 0}, res.X)
}

func TestSolve_GeneralInteger(t *testing.T) {
	res, err := milp.Solve(context.Background(), halfPlane())
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	require.InDelta(t, -3, res.Objective, 1e-9)
	require.InDelta(t, 3, res.X[0]+res.X[1], 1e-9)
}

func TestSolve_Infeasible(t *testing.T) {
	p := &milp.Problem{
		LP: lp.Problem{
			Costs: []float64{1},
			Rows:  []lp.Row{{Coefs: []float64{2}, Sense: lp.EQ, RHS: 1}},
		},
		Integer: []bool{true},
	}
	res, err := milp.Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, milp.Infeasible, res.Status)
	require.False(t, res.HasSolution)
}

func TestSolve_Incumbent(t *testing.T) {
	res, err := milp.Solve(context.Background(), knapsack(), milp.WithIncumbent([]float64{1, 0, 1}))
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	require.InDelta(t, -9, res.Objective, 1e-9)

	_, err = milp.Solve(context.Background(), knapsack(), milp.WithIncumbent([]float64{1, 1, 1}))
	require.ErrorIs(t, err, milp.ErrBadIncumbent)

	_, err = milp.Solve(context.Background(), knapsack(), milp.WithIncumbent([]float64{0.5, 0, 0}))
	require.ErrorIs(t, err, milp.ErrBadIncumbent)
}

func TestSolve_Limits(t *testing.T) {
	res, err := milp.Solve(context.Background(), halfPlane(), milp.WithNodeLimit(1))
	require.NoError(t, err)
	require.Equal(t, milp.Unproven, res.Status)
	require.False(t, res.HasSolution)
	require.Equal(t, 1, res.Nodes)

	// The incumbent survives a limit.
	res, err = milp.Solve(context.Background(), halfPlane(), milp.WithNodeLimit(1), milp.WithIncumbent([]float64{1, 1}))
	require.NoError(t, err)
	require.Equal(t, milp.Unproven, res.Status)
	require.True(t, res.HasSolution)
	require.InDelta(t, -2, res.Objective, 1e-9)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err = milp.Solve(ctx, knapsack())
	require.NoError(t, err)
	require.Equal(t, milp.Unproven, res.Status)
	require.Zero(t, res.Nodes)
}

// x ≤ 1e8·y with x ≥ 1: the relaxation sets y = 1e-8, which is within an
// absolute 1e-6 of zero but breaks the first row once rounded.
func TestSolve_BigCoefficient(t *testing.T) {
	const big = 1e8
	p := &milp.Problem{
		LP: lp.Problem{
			Costs: []float64{0, 1},
			Rows: []lp.Row{
				{Coefs: []float64{1, -big}, Sense: lp.LE, RHS: 0},
				{Coefs: []float64{1, 0}, Sense: lp.GE, RHS: 1},
			},
			Upper: []float64{math.Inf(1), 1},
		},
		Integer: []bool{true, true},
	}
	res, err := milp.Solve(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, milp.Optimal, res.Status)
	require.InDelta(t, 1, res.Objective, 1e-9)
	require.Equal(t, 1.0, res.X[1])
	require.GreaterOrEqual(t, res.X[0], 1.0)
	require.LessOrEqual(t, res.X[0], big)
}

// A closed LP done channel interrupts the first relaxation.
func TestSolve_InterruptedRelaxation(t *testing.T) {
	done := make(chan struct{})
	close(done)
	res, err := milp.Solve(context.Background(), knapsack(), milp.WithLPOptions(lp.Options{Done: done}))
	require.NoError(t, err)
	require.Equal(t, milp.Unproven, res.Status)
	require.Equal(t, 1, res.Nodes)
	require.False(t, res.HasSolution)
}

func TestSolve_DimensionMismatch(t *testing.T) {
	p := knapsack()
	p.Integer = p.Integer[:2]
	_, err := milp.Solve(context.Background(), p)
	require.ErrorIs(t, err, milp.ErrDimensionMismatch)
}
