package model

import (
	"math"

	"github.com/katalvlaran/rpq/jobs"
)

// EstimateBound returns the big-M constant M = Σ_j (r_j + p_j + q_j).
//
// M dominates every start time and the makespan of any left-shifted schedule:
// a job never starts later than max r + Σ p, and its tail adds at most max q.
// The sum is coarse but always sound.
//
// Errors:
//   - jobs.ErrEmptyInstance for a nil or empty set.
//   - ErrBoundOverflow when the sum does not fit into an int.
//
// Complexity: O(n).
func EstimateBound(set *jobs.Set) (int, error) {
	if set.Len() == 0 {
		return 0, jobs.ErrEmptyInstance
	}

	var sum int
	for _, j := range set.Jobs() {
		span := j.Span()
		if span < 0 || sum > math.MaxInt-span {
			return 0, ErrBoundOverflow
		}
		sum += span
	}

	return sum, nil
}
