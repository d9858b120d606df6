package model

import (
	"fmt"

	"github.com/katalvlaran/rpq/jobs"
)

// DecisionModel is the immutable disjunctive formulation of one job set.
// It is safe for concurrent readers.
type DecisionModel struct {
	set       *jobs.Set
	bound     int
	vars      []Var
	cons      []Constraint
	start     map[int]VarID
	precedes  map[[2]int]VarID
	makespan  VarID
	pairCount int
}

// Build constructs the disjunctive model of set with big-M constant bigM.
// Variables are created start[j] by ascending job id, then makespan, then
// precedes[i,j] and precedes[j,i] for every pair i < j in ascending order.
// Constraints follow the same order: release and completion per job, then
// (disjunct i→j, disjunct j→i, exactly-one) per pair. Build is pure, so
// equal inputs give structurally equal models.
//
// Errors:
//   - jobs.ErrEmptyInstance for a nil or empty set.
//   - ErrBoundTooSmall when bigM < Σ(r+p+q).
//
// Complexity: O(n²).
func Build(set *jobs.Set, bigM int) (*DecisionModel, error) {
	total, err := EstimateBound(set)
	if err != nil {
		return nil, err
	}
	if bigM < total {
		return nil, fmt.Errorf("%w: %d < %d", ErrBoundTooSmall, bigM, total)
	}

	var (
		js    = set.SortedByID()
		n     = len(js)
		pairs = n * (n - 1) / 2
		m     = &DecisionModel{
			set:       set,
			bound:     bigM,
			vars:      make([]Var, 0, n+1+2*pairs),
			cons:      make([]Constraint, 0, 2*n+3*pairs),
			start:     make(map[int]VarID, n),
			precedes:  make(map[[2]int]VarID, 2*pairs),
			pairCount: pairs,
		}
	)

	for _, j := range js {
		m.start[j.ID] = m.addVar(fmt.Sprintf("start[%d]", j.ID), Integer, 0, bigM)
	}
	m.makespan = m.addVar("makespan", Integer, 0, bigM)

	for _, j := range js {
		m.cons = append(m.cons, Constraint{
			Kind:      KindRelease,
			Terms:     []Term{{Var: m.start[j.ID], Coef: 1}},
			Sense:     GreaterEq,
			RHS:       j.Release,
			Job:       j.ID,
			Indicator: NoVar,
		}, Constraint{
			Kind:      KindCompletion,
			Terms:     []Term{{Var: m.makespan, Coef: 1}, {Var: m.start[j.ID], Coef: -1}},
			Sense:     GreaterEq,
			RHS:       j.Processing + j.Delivery,
			Job:       j.ID,
			Indicator: NoVar,
		})
	}

	var a, b int
	for a = 0; a < n; a++ {
		for b = a + 1; b < n; b++ {
			m.addPair(js[a], js[b])
		}
	}

	return m, nil
}

// BuildFromJobs estimates the bound of set and builds its model.
func BuildFromJobs(set *jobs.Set) (*DecisionModel, error) {
	bigM, err := EstimateBound(set)
	if err != nil {
		return nil, err
	}

	return Build(set, bigM)
}

func (m *DecisionModel) addVar(name string, kind VarKind, lo, hi int) VarID {
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Var{ID: id, Name: name, Kind: kind, Lo: lo, Hi: hi})

	return id
}

// addPair posts both disjuncts and the exactly-one link of the pair (ji, jj).
func (m *DecisionModel) addPair(ji, jj jobs.Job) {
	pij := m.addVar(fmt.Sprintf("precedes[%d,%d]", ji.ID, jj.ID), Boolean, 0, 1)
	pji := m.addVar(fmt.Sprintf("precedes[%d,%d]", jj.ID, ji.ID), Boolean, 0, 1)
	m.precedes[[2]int{ji.ID, jj.ID}] = pij
	m.precedes[[2]int{jj.ID, ji.ID}] = pji

	m.cons = append(m.cons,
		m.disjunct(ji, jj, pij),
		m.disjunct(jj, ji, pji),
		Constraint{
			Kind:      KindExactlyOne,
			Terms:     []Term{{Var: pij, Coef: 1}, {Var: pji, Coef: 1}},
			Sense:     Equal,
			RHS:       1,
			Before:    ji.ID,
			After:     jj.ID,
			Indicator: NoVar,
		},
	)
}

// disjunct returns start[before] − start[after] − M·ind ≤ −p_before.
func (m *DecisionModel) disjunct(before, after jobs.Job, ind VarID) Constraint {
	return Constraint{
		Kind: KindDisjunct,
		Terms: []Term{
			{Var: m.start[before.ID], Coef: 1},
			{Var: m.start[after.ID], Coef: -1},
			{Var: ind, Coef: -m.bound},
		},
		Sense:     LessEq,
		RHS:       -before.Processing,
		Before:    before.ID,
		After:     after.ID,
		Indicator: ind,
		Gap:       before.Processing,
	}
}

// Start returns the start variable of job id.
func (m *DecisionModel) Start(id int) (VarID, error) {
	v, ok := m.start[id]
	if !ok {
		return NoVar, fmt.Errorf("%w: %d", ErrUnknownJob, id)
	}

	return v, nil
}

// Precedes returns the indicator precedes[i,j] for i ≠ j.
func (m *DecisionModel) Precedes(i, j int) (VarID, error) {
	v, ok := m.precedes[[2]int{i, j}]
	if !ok {
		return NoVar, fmt.Errorf("%w: pair (%d,%d)", ErrUnknownJob, i, j)
	}

	return v, nil
}

// Makespan returns the makespan variable.
func (m *DecisionModel) Makespan() VarID { return m.makespan }

// Goal returns the optimisation direction: minimise makespan.
func (m *DecisionModel) Goal() Objective {
	return Objective{Var: m.makespan, Minimize: true}
}

// Bound returns the big-M constant the model was built with.
func (m *DecisionModel) Bound() int { return m.bound }

// Jobs returns the job set the model was built from.
func (m *DecisionModel) Jobs() *jobs.Set { return m.set }

// PairCount returns the number of unordered job pairs, n(n−1)/2.
func (m *DecisionModel) PairCount() int { return m.pairCount }

// NumVars returns the number of variables.
func (m *DecisionModel) NumVars() int { return len(m.vars) }

// Vars returns a copy of the variables ordered by VarID.
func (m *DecisionModel) Vars() []Var {
	out := make([]Var, len(m.vars))
	copy(out, m.vars)

	return out
}

// Constraints returns a copy of the constraints in construction order.
func (m *DecisionModel) Constraints() []Constraint {
	out := make([]Constraint, len(m.cons))
	for i, c := range m.cons {
		c.Terms = append([]Term(nil), c.Terms...)
		out[i] = c
	}

	return out
}
