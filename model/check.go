package model

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/rpq/jobs"
)

// Check validates a against every variable domain and every constraint.
//
// Errors:
//   - ErrNilModel for a nil model.
//   - ErrAssignment (wrapped with the offending variable or constraint).
//
// Complexity: O(n²).
func (m *DecisionModel) Check(a Assignment) error {
	if m == nil {
		return ErrNilModel
	}
	if len(a) != len(m.vars) {
		return fmt.Errorf("%w: %d values for %d variables", ErrAssignment, len(a), len(m.vars))
	}
	for _, v := range m.vars {
		if a[v.ID] < v.Lo || a[v.ID] > v.Hi {
			return fmt.Errorf("%w: %s=%d outside [%d,%d]", ErrAssignment, v.Name, a[v.ID], v.Lo, v.Hi)
		}
	}
	for i, c := range m.cons {
		if !c.Satisfied(a) {
			return fmt.Errorf("%w: constraint #%d (%s) activity %d %s %d fails",
				ErrAssignment, i, c.Kind, c.Activity(a), c.Sense, c.RHS)
		}
	}

	return nil
}

// CheckMutualExclusion verifies that no two jobs overlap on the machine:
// for every pair the intervals [start, start+p) are disjoint.
//
// Complexity: O(n²).
func (m *DecisionModel) CheckMutualExclusion(a Assignment) error {
	if m == nil {
		return ErrNilModel
	}
	if len(a) != len(m.vars) {
		return fmt.Errorf("%w: %d values for %d variables", ErrAssignment, len(a), len(m.vars))
	}

	js := m.set.SortedByID()
	var x, y int
	for x = 0; x < len(js); x++ {
		for y = x + 1; y < len(js); y++ {
			si, sj := a[m.start[js[x].ID]], a[m.start[js[y].ID]]
			if si+js[x].Processing <= sj || sj+js[y].Processing <= si {
				continue
			}

			return fmt.Errorf("%w: jobs %d [%d,%d) and %d [%d,%d) overlap", ErrAssignment,
				js[x].ID, si, si+js[x].Processing, js[y].ID, sj, sj+js[y].Processing)
		}
	}

	return nil
}

// Sequence returns the job ids ordered by their start time in a (ties by id).
func (m *DecisionModel) Sequence(a Assignment) []int {
	ids := m.set.IDs()
	sort.Slice(ids, func(x, y int) bool {
		sx, sy := a[m.start[ids[x]]], a[m.start[ids[y]]]
		if sx != sy {
			return sx < sy
		}

		return ids[x] < ids[y]
	})

	return ids
}

// Objective returns the makespan value carried by a.
func (m *DecisionModel) Objective(a Assignment) int { return a[m.makespan] }

// FromSchedule converts a schedule into a full assignment of the model:
// start times and makespan are copied, and for every ordered pair
// precedes[i,j] = 0 when i runs before j and 1 otherwise.
//
// Errors:
//   - jobs.ErrInvalidSequence when the schedule does not cover the model's jobs.
//   - ErrAssignment when the result violates the model (e.g., a start beyond M).
func (m *DecisionModel) FromSchedule(s jobs.Schedule) (Assignment, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if len(s.Order) != m.set.Len() || len(s.Start) != len(s.Order) {
		return nil, fmt.Errorf("%w: schedule covers %d of %d jobs", jobs.ErrInvalidSequence, len(s.Order), m.set.Len())
	}

	var (
		a   = make(Assignment, len(m.vars))
		pos = make(map[int]int, len(s.Order))
	)
	for k, id := range s.Order {
		v, ok := m.start[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown job id %d", jobs.ErrInvalidSequence, id)
		}
		a[v] = s.Start[k]
		pos[id] = k
	}
	if len(pos) != len(s.Order) {
		return nil, fmt.Errorf("%w: repeated job id", jobs.ErrInvalidSequence)
	}
	a[m.makespan] = s.Makespan
	for pair, v := range m.precedes {
		if pos[pair[0]] > pos[pair[1]] {
			a[v] = 1
		}
	}
	if err := m.Check(a); err != nil {
		return nil, err
	}

	return a, nil
}
