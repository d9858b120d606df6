package solver_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/jobs"
	"github.com/katalvlaran/rpq/model"
	"github.com/katalvlaran/rpq/solver"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func buildModel(t *testing.T, triples ...[3]int) *model.DecisionModel {
	t.Helper()
	set, err := jobs.FromTriples(triples)
	require.NoError(t, err)
	m, err := model.BuildFromJobs(set)
	require.NoError(t, err)

	return m
}

func adapters(opts ...solver.Option) []solver.Solver {
	opts = append([]solver.Option{solver.WithLogger(quiet)}, opts...)

	return []solver.Solver{
		solver.NewLinearInteger(opts...),
		solver.NewConstraintPropagation(opts...),
		solver.NewConstraintPropagation(append(opts, solver.WithEncoding(solver.EncodingNative))...),
	}
}

func solveOptimal(t *testing.T, m *model.DecisionModel, opts ...solver.Option) []solver.Result {
	t.Helper()
	results, err := solver.SolveAll(context.Background(), m, adapters(opts...)...)
	require.NoError(t, err)
	for _, r := range results {
		require.Equal(t, solver.Optimal, r.Status, r.Engine)
		require.True(t, r.HasObjective, r.Engine)
		require.NoError(t, m.Check(r.Assignment), r.Engine)
		require.NoError(t, m.CheckMutualExclusion(r.Assignment), r.Engine)
	}

	return results
}

func TestSolve_KnownOptima(t *testing.T) {
	cases := []struct {
		name    string
		triples [][3]int
		want    int
	}{
		{"single job", [][3]int{{4, 2, 3}}, 9},
		{"two jobs back to back", [][3]int{{0, 3, 0}, {0, 2, 0}}, 5},
		{"long tail first", [][3]int{{0, 1, 9}, {0, 1, 0}}, 10},
		{"future release", [][3]int{{100, 2, 3}, {0, 1, 0}}, 105},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := buildModel(t, tc.triples...)
			for _, seeding := range []bool{true, false} {
				for _, r := range solveOptimal(t, m, solver.WithSeeding(seeding)) {
					require.Equal(t, tc.want, r.Objective, "%s seeding=%v", r.Engine, seeding)
				}
			}
		})
	}
}

func TestSolve_LongTailRunsFirst(t *testing.T) {
	m := buildModel(t, [3]int{0, 1, 9}, [3]int{0, 1, 0})
	for _, r := range solveOptimal(t, m) {
		require.Equal(t, []int{0, 1}, r.Sequence, r.Engine)
		require.NotEqual(t, [16]byte{}, [16]byte(r.RunID))
	}
}

func TestSolve_NilModel(t *testing.T) {
	for _, s := range adapters() {
		_, err := s.Solve(context.Background(), nil)
		require.ErrorIs(t, err, model.ErrNilModel, s.Name())
	}
	_, err := solver.SolveAll(context.Background(), nil, adapters()...)
	require.ErrorIs(t, err, model.ErrNilModel)
	_, err = solver.SolveAll(context.Background(), buildModel(t, [3]int{0, 1, 0}))
	require.ErrorIs(t, err, solver.ErrNoSolvers)
}

func TestSolve_UnprovenWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := buildModel(t, [3]int{0, 3, 4}, [3]int{1, 2, 8}, [3]int{2, 4, 1})

	s := solver.NewConstraintPropagation(
		solver.WithLogger(logger),
		solver.WithNodeLimit(1),
		solver.WithSeeding(false),
	)
	res, err := s.Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, solver.Unproven, res.Status)
	require.Equal(t, "UNPROVEN", res.Status.String())
	require.Contains(t, buf.String(), "optimality not proven")
	require.Contains(t, buf.String(), "engine=constraint-propagation")
}

func TestSolve_CanceledContext(t *testing.T) {
	m := buildModel(t, [3]int{0, 3, 4}, [3]int{1, 2, 8}, [3]int{2, 4, 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := solver.SolveAll(ctx, m, adapters()...)
	require.NoError(t, err)
	for _, r := range results {
		require.Equal(t, solver.Unproven, r.Status, r.Engine)
	}
}

type countingRecorder struct {
	mu    sync.Mutex
	calls map[string]string
}

func (c *countingRecorder) RecordSolve(_ context.Context, engine, status string, _ float64, _ int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[engine] = status
}

func TestSolve_Recorder(t *testing.T) {
	rec := &countingRecorder{calls: map[string]string{}}
	m := buildModel(t, [3]int{0, 3, 0}, [3]int{0, 2, 0})
	solveOptimal(t, m, solver.WithRecorder(rec))
	require.Equal(t, map[string]string{
		"linear-integer":         "OPTIMAL",
		"constraint-propagation": "OPTIMAL",
	}, rec.calls)
}

func TestParseEncoding(t *testing.T) {
	e, ok := solver.ParseEncoding("native")
	require.True(t, ok)
	require.Equal(t, solver.EncodingNative, e)
	e, ok = solver.ParseEncoding("big-m")
	require.True(t, ok)
	require.Equal(t, "big-m", e.String())
	_, ok = solver.ParseEncoding("cp-sat")
	require.False(t, ok)
}

func TestDefaultOptions(t *testing.T) {
	o := solver.DefaultOptions()
	require.Equal(t, 30*time.Second, o.TimeLimit)
	require.True(t, o.Seeding)
	require.NotNil(t, o.Logger)
	require.Equal(t, solver.EncodingBigM, o.Encoding)
}
