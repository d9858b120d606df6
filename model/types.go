package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the model package.
var (
	// ErrNilModel indicates that a nil *DecisionModel was passed.
	ErrNilModel = errors.New("model: model is nil")

	// ErrBoundOverflow indicates that Σ(r+p+q) does not fit into an int.
	ErrBoundOverflow = errors.New("model: bound overflows int")

	// ErrBoundTooSmall indicates a big-M below Σ(r+p+q); such a model could cut
	// off feasible schedules.
	ErrBoundTooSmall = errors.New("model: bound is smaller than the sum of job parameters")

	// ErrUnknownJob indicates a lookup for a job id the model does not contain.
	ErrUnknownJob = errors.New("model: unknown job id")

	// ErrAssignment indicates that an assignment violates a domain or a constraint.
	ErrAssignment = errors.New("model: assignment violates the model")
)

// VarID indexes DecisionModel variables; it is also the index into an Assignment.
type VarID int

// NoVar marks the absence of a variable (e.g., Constraint.Indicator of a non-disjunct).
const NoVar VarID = -1

// VarKind distinguishes integer from boolean decision variables.
type VarKind int

const (
	// Integer is a bounded integer variable.
	Integer VarKind = iota
	// Boolean is a 0/1 variable.
	Boolean
)

func (k VarKind) String() string {
	if k == Boolean {
		return "bool"
	}

	return "int"
}

// Var is one decision variable with its inclusive domain [Lo, Hi].
type Var struct {
	ID   VarID
	Name string
	Kind VarKind
	Lo   int
	Hi   int
}

// Term is coef·var inside a linear expression.
type Term struct {
	Var  VarID
	Coef int
}

// Sense is the comparison of a linear constraint.
type Sense int

const (
	// LessEq is Σ ≤ rhs.
	LessEq Sense = iota
	// GreaterEq is Σ ≥ rhs.
	GreaterEq
	// Equal is Σ = rhs.
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessEq:
		return "<="
	case GreaterEq:
		return ">="
	default:
		return "=="
	}
}

// Kind tags the role a constraint plays in the formulation.
type Kind int

const (
	// KindRelease is start[j] ≥ r_j.
	KindRelease Kind = iota
	// KindCompletion is makespan − start[j] ≥ p_j + q_j.
	KindCompletion
	// KindDisjunct is start[i] − start[j] − M·precedes[i,j] ≤ −p_i.
	KindDisjunct
	// KindExactlyOne is precedes[i,j] + precedes[j,i] = 1.
	KindExactlyOne
)

func (k Kind) String() string {
	switch k {
	case KindRelease:
		return "release"
	case KindCompletion:
		return "completion"
	case KindDisjunct:
		return "disjunct"
	case KindExactlyOne:
		return "exactly-one"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Constraint is a normalised linear constraint Σ Terms (Sense) RHS.
//
// Metadata by kind:
//
//	KindRelease, KindCompletion – Job is the job id.
//	KindDisjunct                – Before/After job ids, Indicator = precedes[Before,After],
//	                              Gap = p_Before (the arc start[Before] + Gap ≤ start[After]).
//	KindExactlyOne              – Before < After are the pair's job ids.
type Constraint struct {
	Kind  Kind
	Terms []Term
	Sense Sense
	RHS   int

	Job       int
	Before    int
	After     int
	Indicator VarID
	Gap       int
}

// Activity evaluates Σ coef·a[var].
func (c Constraint) Activity(a Assignment) int {
	var sum int
	for _, t := range c.Terms {
		sum += t.Coef * a[t.Var]
	}

	return sum
}

// Satisfied reports whether a satisfies c.
func (c Constraint) Satisfied(a Assignment) bool {
	act := c.Activity(a)
	switch c.Sense {
	case LessEq:
		return act <= c.RHS
	case GreaterEq:
		return act >= c.RHS
	default:
		return act == c.RHS
	}
}

// Objective is the optimisation direction on a single variable.
type Objective struct {
	Var      VarID
	Minimize bool
}

// Assignment holds one value per model variable, indexed by VarID.
type Assignment []int
