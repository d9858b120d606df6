package solver

import (
	"context"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/rpq/model"
)

// SolveAll runs every solver on m concurrently. Results are returned in the
// order of solvers. The model is shared read-only. The first error cancels the
// remaining solves and is returned alongside whatever results completed.
func SolveAll(ctx context.Context, m *model.DecisionModel, solvers ...Solver) ([]Result, error) {
	if len(solvers) == 0 {
		return nil, ErrNoSolvers
	}
	if m == nil {
		return nil, model.ErrNilModel
	}

	results := make([]Result, len(solvers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range solvers {
		i, s := i, s
		g.Go(func() error {
			res, err := s.Solve(gctx, m)
			results[i] = res
			return err
		})
	}
	err := g.Wait()

	return results, err
}

// Budget yields the time limit of escalation attempt n (1-indexed).
type Budget interface {
	Limit(attempt int) time.Duration
}

// Exponential doubles the budget each attempt.
// Limit = min(Initial * 2^(attempt-1), Max).
type Exponential struct {
	Initial time.Duration
	Max     time.Duration
}

// NewExponential creates an exponential budget.
func NewExponential(initial, maxLimit time.Duration) *Exponential {
	return &Exponential{Initial: initial, Max: maxLimit}
}

// Limit returns Initial * 2^(attempt-1), capped at Max.
func (e *Exponential) Limit(attempt int) time.Duration {
	d := time.Duration(float64(e.Initial) * math.Pow(2, float64(attempt-1)))
	if e.Max > 0 && d > e.Max {
		return e.Max
	}

	return d
}

// Escalate solves m with build(budget.Limit(1)) and, while the result stays
// Unproven, re-solves the same model with the next budget, up to attempts
// runs in total. The best result seen is returned; the model is never
// altered between attempts.
func Escalate(ctx context.Context, m *model.DecisionModel, build func(time.Duration) Solver,
	budget Budget, attempts int, logger *slog.Logger) (Result, error) {
	if build == nil {
		return Result{}, ErrNoSolvers
	}
	if logger == nil {
		logger = slog.Default()
	}
	if attempts < 1 {
		attempts = 1
	}

	var best Result
	for attempt := 1; attempt <= attempts; attempt++ {
		limit := budget.Limit(attempt)
		res, err := build(limit).Solve(ctx, m)
		if err != nil {
			return res, err
		}
		if attempt == 1 || better(res, best) {
			best = res
		}
		if res.Status != Unproven {
			return res, nil
		}
		if ctx.Err() != nil {
			return best, nil
		}
		if attempt < attempts {
			logger.Info("escalating time budget",
				slog.String("engine", res.Engine),
				slog.Int("attempt", attempt+1),
				slog.Duration("time_limit", budget.Limit(attempt+1)),
			)
		}
	}

	return best, nil
}

// better reports whether a is preferable to b among Unproven results.
func better(a, b Result) bool {
	if a.HasObjective != b.HasObjective {
		return a.HasObjective
	}

	return a.HasObjective && a.Objective < b.Objective
}
