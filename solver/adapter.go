package solver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/rpq/jobs"
	"github.com/katalvlaran/rpq/model"
)

// run carries the per-solve bookkeeping shared by both adapters.
type run struct {
	engine string
	opts   Options
	id     uuid.UUID
	began  time.Time
	log    *slog.Logger
}

func newRun(engine string, opts Options, m *model.DecisionModel) *run {
	id := uuid.New()

	return &run{
		engine: engine,
		opts:   opts,
		id:     id,
		began:  time.Now(),
		log: opts.Logger.With(
			slog.String("engine", engine),
			slog.String("run_id", id.String()),
			slog.Int("jobs", m.Jobs().Len()),
		),
	}
}

// seed returns the Schrage schedule as a model assignment, or nil when
// seeding is off or the schedule does not fit the model.
func (r *run) seed(m *model.DecisionModel) model.Assignment {
	if !r.opts.Seeding {
		return nil
	}
	sched := jobs.Schrage(m.Jobs())
	a, err := m.FromSchedule(sched)
	if err != nil {
		r.log.Debug("seed rejected", slog.Any("error", err))
		return nil
	}
	r.log.Debug("seeded", slog.Int("makespan", sched.Makespan), slog.Any("order", sched.Order))

	return a
}

// finish validates the engine answer against m, fills the Result, logs and
// records it.
func (r *run) finish(ctx context.Context, m *model.DecisionModel, st Status, a model.Assignment, nodes int) (Result, error) {
	res := Result{
		Engine:   r.engine,
		Status:   st,
		Nodes:    nodes,
		Duration: time.Since(r.began),
		RunID:    r.id,
	}
	if a != nil {
		if err := m.Check(a); err != nil {
			r.log.Error("engine answer violates the model", slog.Any("error", err))
			return res, fmt.Errorf("%w: %s: %w", ErrInconsistentAssignment, r.engine, err)
		}
		res.Assignment = a
		res.Objective = m.Objective(a)
		res.HasObjective = true
		res.Sequence = m.Sequence(a)
	}

	attrs := []any{
		slog.String("status", st.String()),
		slog.Int("nodes", nodes),
		slog.Duration("duration", res.Duration),
	}
	if res.HasObjective {
		attrs = append(attrs, slog.Int("objective", res.Objective))
	}
	switch st {
	case Optimal:
		r.log.Info("solve finished", attrs...)
	case Unproven:
		r.log.Warn("optimality not proven within limits", attrs...)
	default:
		r.log.Warn("engine reported the model infeasible", attrs...)
	}

	if r.opts.Recorder != nil {
		r.opts.Recorder.RecordSolve(ctx, r.engine, st.String(), res.Duration.Seconds(), nodes)
	}

	return res, nil
}
