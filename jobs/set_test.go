package jobs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rpq/jobs"
)

func TestNew_Validation(t *testing.T) {
	_, err := jobs.New(nil)
	require.ErrorIs(t, err, jobs.ErrEmptyInstance)
	require.ErrorIs(t, err, jobs.ErrMalformedInstance) // empty is a malformed instance

	_, err = jobs.New([]jobs.Job{{ID: 1, Processing: 1}, {ID: 1, Processing: 2}})
	require.ErrorIs(t, err, jobs.ErrDuplicateID)

	cases := []struct {
		name  string
		job   jobs.Job
		field string
	}{
		{"negative release", jobs.Job{ID: 3, Release: -1, Processing: 1}, "release"},
		{"zero processing", jobs.Job{ID: 3, Processing: 0}, "processing"},
		{"negative processing", jobs.Job{ID: 3, Processing: -2}, "processing"},
		{"negative delivery", jobs.Job{ID: 3, Processing: 1, Delivery: -5}, "delivery"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jobs.New([]jobs.Job{tc.job})
			require.ErrorIs(t, err, jobs.ErrMalformedInstance)

			var pe jobs.ParameterError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tc.field, pe.Field)
			require.Equal(t, 3, pe.JobID)
		})
	}
}

func TestSet_Accessors(t *testing.T) {
	in := []jobs.Job{
		{ID: 7, Release: 1, Processing: 2, Delivery: 3},
		{ID: 2, Release: 0, Processing: 5, Delivery: 0},
	}
	s, err := jobs.New(in)
	require.NoError(t, err)

	in[0].Release = 99 // the set keeps its own copy
	require.Equal(t, 2, s.Len())
	require.Equal(t, 1, s.At(0).Release)
	require.Equal(t, []int{7, 2}, s.IDs())

	j, ok := s.ByID(2)
	require.True(t, ok)
	require.Equal(t, 5, j.Processing)
	_, ok = s.ByID(42)
	require.False(t, ok)

	sorted := s.SortedByID()
	require.Equal(t, 2, sorted[0].ID)
	require.Equal(t, 7, sorted[1].ID)
	require.Equal(t, 6+5, s.Total())
}

func TestFromTriples_AssignsSequentialIDs(t *testing.T) {
	s, err := jobs.FromTriples([][3]int{{0, 1, 9}, {0, 1, 0}, {4, 2, 1}})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, s.IDs())
	require.Equal(t, 9, s.At(0).Delivery)
}
