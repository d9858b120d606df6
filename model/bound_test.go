package model_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/jobs"
	"github.com/katalvlaran/rpq/model"
)

func mustSet(t *testing.T, triples ...[3]int) *jobs.Set {
	t.Helper()
	s, err := jobs.FromTriples(triples)
	require.NoError(t, err)

	return s
}

func randomSet(t *testing.T, rng *rand.Rand, n int) *jobs.Set {
	t.Helper()
	triples := make([][3]int, n)
	for i := range triples {
		triples[i] = [3]int{rng.Intn(20), 1 + rng.Intn(9), rng.Intn(15)}
	}

	return mustSet(t, triples...)
}

// permute calls fn with every permutation of ids (Heap's algorithm).
func permute(ids []int, fn func([]int)) {
	var rec func(k int)
	rec = func(k int) {
		if k <= 1 {
			fn(ids)
			return
		}
		for i := 0; i < k; i++ {
			rec(k - 1)
			if k%2 == 0 {
				ids[i], ids[k-1] = ids[k-1], ids[i]
			} else {
				ids[0], ids[k-1] = ids[k-1], ids[0]
			}
		}
	}
	rec(len(ids))
}

func TestEstimateBound_Sum(t *testing.T) {
	s := mustSet(t, [3]int{1, 2, 3}, [3]int{0, 4, 0}, [3]int{10, 1, 5})
	m, err := model.EstimateBound(s)
	require.NoError(t, err)
	require.Equal(t, 26, m)
}

func TestEstimateBound_Errors(t *testing.T) {
	_, err := model.EstimateBound(nil)
	require.ErrorIs(t, err, jobs.ErrEmptyInstance)

	huge := mustSet(t, [3]int{math.MaxInt / 2, 1, 0}, [3]int{math.MaxInt / 2, 1, 0}, [3]int{5, 1, 0})
	_, err = model.EstimateBound(huge)
	require.ErrorIs(t, err, model.ErrBoundOverflow)
}

// Every left-shifted schedule stays within the bound, whatever the order.
func TestEstimateBound_Soundness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		s := randomSet(t, rng, 1+rng.Intn(5))
		bigM, err := model.EstimateBound(s)
		require.NoError(t, err)

		permute(s.IDs(), func(order []int) {
			sched, err := jobs.Evaluate(s, order)
			require.NoError(t, err)
			require.LessOrEqual(t, sched.Makespan, bigM)
			for _, st := range sched.Start {
				require.LessOrEqual(t, st, bigM)
			}
		})
	}
}
