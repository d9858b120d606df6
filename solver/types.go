package solver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/rpq/model"
)

// Sentinel errors.
var (
	// ErrInconsistentAssignment indicates an engine answer that violates the
	// model it was given.
	ErrInconsistentAssignment = errors.New("solver: engine returned an assignment that violates the model")

	// ErrNoSolvers indicates SolveAll or Escalate was called without adapters.
	ErrNoSolvers = errors.New("solver: no solvers")
)

// Status is the engine-neutral outcome of a solve.
type Status int

const (
	// Optimal means Objective is the proven optimum.
	Optimal Status = iota
	// Infeasible means the engine proved that no schedule exists.
	Infeasible
	// Unproven means a limit stopped the engine; Objective is the best value
	// found when HasObjective.
	Unproven
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	default:
		return "UNPROVEN"
	}
}

// Result is what an adapter reports.
type Result struct {
	Engine       string
	Status       Status
	Objective    int
	HasObjective bool
	Assignment   model.Assignment
	Sequence     []int
	Nodes        int
	Duration     time.Duration
	RunID        uuid.UUID
}

// Solver is the SolverAdapter contract.
type Solver interface {
	Name() string
	Solve(ctx context.Context, m *model.DecisionModel) (Result, error)
}

// Recorder receives one observation per finished solve.
type Recorder interface {
	RecordSolve(ctx context.Context, engine, status string, seconds float64, nodes int)
}

// Encoding selects how ConstraintPropagation posts disjuncts.
type Encoding int

const (
	// EncodingBigM posts the big-M rows verbatim.
	EncodingBigM Encoding = iota
	// EncodingNative posts half-reified precedences instead of big-M rows.
	EncodingNative
)

func (e Encoding) String() string {
	if e == EncodingNative {
		return "native"
	}

	return "big-m"
}

// ParseEncoding maps "big-m" and "native" to an Encoding.
func ParseEncoding(s string) (Encoding, bool) {
	switch s {
	case "big-m", "bigm":
		return EncodingBigM, true
	case "native":
		return EncodingNative, true
	default:
		return EncodingBigM, false
	}
}

// Options configures an adapter.
//
// TimeLimit – wall-clock budget per solve; 0 disables it.
// NodeLimit – search node budget; 0 disables it.
// Seeding   – supply a Schrage schedule as incumbent (milp) or hint (cp).
// Logger    – diagnostics sink.
// Recorder  – optional metrics sink.
// Encoding  – disjunct encoding of ConstraintPropagation.
type Options struct {
	TimeLimit time.Duration
	NodeLimit int
	Seeding   bool
	Logger    *slog.Logger
	Recorder  Recorder
	Encoding  Encoding
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a 30s time limit, no node limit, seeding on,
// slog.Default() and the big-M encoding.
func DefaultOptions() Options {
	return Options{
		TimeLimit: 30 * time.Second,
		Seeding:   true,
		Logger:    slog.Default(),
		Encoding:  EncodingBigM,
	}
}

// WithTimeLimit sets the per-solve time budget.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithNodeLimit sets the search node budget.
func WithNodeLimit(n int) Option {
	return func(o *Options) { o.NodeLimit = n }
}

// WithSeeding toggles the Schrage incumbent.
func WithSeeding(on bool) Option {
	return func(o *Options) { o.Seeding = on }
}

// WithLogger sets the diagnostics logger; nil keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder attaches a metrics sink.
func WithRecorder(r Recorder) Option {
	return func(o *Options) { o.Recorder = r }
}

// WithEncoding selects the disjunct encoding of ConstraintPropagation.
func WithEncoding(e Encoding) Option {
	return func(o *Options) { o.Encoding = e }
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
