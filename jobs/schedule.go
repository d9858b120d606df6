package jobs

import "fmt"

// Schedule is a non-preemptive single-machine schedule.
//
//	Order    – job ids in processing order.
//	Start    – Start[k] is the start time of Order[k].
//	Makespan – max over jobs of start + p + q.
type Schedule struct {
	Order    []int
	Start    []int
	Makespan int
}

// Evaluate computes the left-shifted schedule of order: every job starts as
// soon as it is released and the machine is free.
//
// Errors:
//   - ErrInvalidSequence when order is not a permutation of the set's ids.
//
// Complexity: O(n).
func Evaluate(s *Set, order []int) (Schedule, error) {
	if s.Len() == 0 {
		return Schedule{}, ErrEmptyInstance
	}
	if len(order) != s.Len() {
		return Schedule{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidSequence, len(order), s.Len())
	}

	var (
		seen  = make(map[int]bool, len(order))
		out   = Schedule{Order: append([]int(nil), order...), Start: make([]int, len(order))}
		t     int
		k, id int
	)
	for k, id = range order {
		j, ok := s.ByID(id)
		if !ok {
			return Schedule{}, fmt.Errorf("%w: unknown job id %d", ErrInvalidSequence, id)
		}
		if seen[id] {
			return Schedule{}, fmt.Errorf("%w: job id %d repeated", ErrInvalidSequence, id)
		}
		seen[id] = true

		if j.Release > t {
			t = j.Release
		}
		out.Start[k] = t
		t += j.Processing
		if c := t + j.Delivery; c > out.Makespan {
			out.Makespan = c
		}
	}

	return out, nil
}

// Schrage builds a schedule with Schrage's rule: whenever the machine becomes
// free, start the released job with the largest delivery time (ties: smaller
// id); if nothing is released, idle until the next release. The result is
// always feasible and is a good upper bound for 1|r_j,q_j|Cmax.
//
// Complexity: O(n²).
func Schrage(s *Set) Schedule {
	if s.Len() == 0 {
		return Schedule{}
	}
	var (
		pending = s.SortedByID()
		order   = make([]int, 0, len(pending))
		t       = -1
	)
	for len(pending) > 0 {
		// Advance the clock to the earliest release when nothing is ready.
		minR := pending[0].Release
		for _, j := range pending[1:] {
			if j.Release < minR {
				minR = j.Release
			}
		}
		if t < minR {
			t = minR
		}

		best := -1
		for k, j := range pending {
			if j.Release > t {
				continue
			}
			if best < 0 || j.Delivery > pending[best].Delivery {
				best = k
			}
		}
		j := pending[best]
		order = append(order, j.ID)
		t += j.Processing
		pending = append(pending[:best], pending[best+1:]...)
	}

	sched, err := Evaluate(s, order)
	if err != nil {
		// order is a permutation of s by construction.
		panic(err)
	}

	return sched
}
