package cp

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned while building a Model.
var (
	// ErrEmptyDomain indicates lo > hi for a new variable.
	ErrEmptyDomain = errors.New("cp: empty domain")

	// ErrUnknownVar indicates a variable that does not belong to the model.
	ErrUnknownVar = errors.New("cp: unknown variable")

	// ErrNotBoolean indicates a literal that is not a boolean variable, or a
	// literal value outside {0, 1}.
	ErrNotBoolean = errors.New("cp: literal is not boolean")
)

// VarID identifies a model variable.
type VarID int

// Term is coef·var.
type Term struct {
	Var  VarID
	Coef int
}

// Sense of a linear constraint.
type Sense int

const (
	// LE is Σ ≤ rhs.
	LE Sense = iota
	// GE is Σ ≥ rhs.
	GE
	// EQ is Σ = rhs.
	EQ
)

// Status of a search.
type Status int

const (
	// Optimal means the objective value is proven optimal, or, without an
	// objective, that a solution was found.
	Optimal Status = iota
	// Infeasible means the search space holds no solution.
	Infeasible
	// Unproven means a limit stopped the search.
	Unproven
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unproven:
		return "unproven"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result of Solve. Values is indexed by VarID and valid when HasSolution.
type Result struct {
	Status      Status
	HasSolution bool
	Objective   int
	Values      []int
	Nodes       int
	Failures    int
	Solutions   int
}

// Options configures Solve.
//
// TimeLimit – 0 disables it.
// NodeLimit – 0 disables it.
type Options struct {
	TimeLimit time.Duration
	NodeLimit int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns no limits.
func DefaultOptions() Options { return Options{} }

// WithTimeLimit bounds the wall-clock time of the search.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithNodeLimit bounds the number of search nodes.
func WithNodeLimit(n int) Option {
	return func(o *Options) { o.NodeLimit = n }
}

// floorDiv returns ⌊a/b⌋ for b ≠ 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

// ceilDiv returns ⌈a/b⌉ for b ≠ 0.
func ceilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}

	return q
}
