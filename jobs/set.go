package jobs

import "sort"

// Set is an ordered, duplicate-id-free, immutable collection of jobs.
// The zero value is an empty set; use New or FromTriples to build one.
type Set struct {
	jobs  []Job       // input order
	index map[int]int // id -> position in jobs
}

// New validates jobs and returns an immutable Set that keeps their order.
// The slice is copied; later changes to it do not affect the Set.
//
// Errors:
//   - ErrEmptyInstance when len(jobs) == 0.
//   - ErrDuplicateID when two jobs share an id.
//   - ParameterError (matches ErrMalformedInstance) on r < 0, p ≤ 0 or q < 0.
//
// Complexity: O(n).
func New(jobs []Job) (*Set, error) {
	if len(jobs) == 0 {
		return nil, ErrEmptyInstance
	}
	s := &Set{
		jobs:  make([]Job, len(jobs)),
		index: make(map[int]int, len(jobs)),
	}
	copy(s.jobs, jobs)

	var (
		i   int
		err error
	)
	for i = range s.jobs {
		if err = s.jobs[i].validate(); err != nil {
			return nil, err
		}
		if _, dup := s.index[s.jobs[i].ID]; dup {
			return nil, ErrDuplicateID
		}
		s.index[s.jobs[i].ID] = i
	}

	return s, nil
}

// FromTriples builds a Set from (r, p, q) triples, assigning ids 0..n-1 in
// input order.
func FromTriples(triples [][3]int) (*Set, error) {
	js := make([]Job, len(triples))
	for i, t := range triples {
		js[i] = Job{ID: i, Release: t[0], Processing: t[1], Delivery: t[2]}
	}

	return New(js)
}

// Len returns the number of jobs n.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.jobs)
}

// Jobs returns a copy of the jobs in input order.
func (s *Set) Jobs() []Job {
	if s == nil {
		return nil
	}
	out := make([]Job, len(s.jobs))
	copy(out, s.jobs)

	return out
}

// At returns the job at position i in input order. It panics when i is out of
// range, like a slice index.
func (s *Set) At(i int) Job { return s.jobs[i] }

// ByID returns the job with the given id.
func (s *Set) ByID(id int) (Job, bool) {
	if s == nil {
		return Job{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Job{}, false
	}

	return s.jobs[i], true
}

// IDs returns the job ids in input order.
func (s *Set) IDs() []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = j.ID
	}

	return out
}

// SortedByID returns a copy of the jobs in ascending id order. This is the
// canonical pair order used by model builders.
func (s *Set) SortedByID() []Job {
	out := s.Jobs()
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })

	return out
}

// Total returns Σ(r + p + q) over all jobs.
func (s *Set) Total() int {
	var sum int
	for _, j := range s.Jobs() {
		sum += j.Span()
	}

	return sum
}
