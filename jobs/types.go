package jobs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the jobs package.
var (
	// ErrMalformedInstance indicates that the instance data cannot describe a
	// valid RPQ problem. It is fatal and reported before any model is built.
	ErrMalformedInstance = errors.New("jobs: malformed instance")

	// ErrEmptyInstance indicates an instance without jobs. It is a special case
	// of ErrMalformedInstance: errors.Is matches both.
	ErrEmptyInstance = fmt.Errorf("%w: no jobs", ErrMalformedInstance)

	// ErrDuplicateID indicates two jobs sharing the same id.
	ErrDuplicateID = fmt.Errorf("%w: duplicate job id", ErrMalformedInstance)

	// ErrInvalidSequence indicates that a job order is not a permutation of the set's ids.
	ErrInvalidSequence = errors.New("jobs: invalid job sequence")
)

// Job is one RPQ job.
//
//	ID         – stable identity, unique within a Set.
//	Release    – r, earliest start time (≥ 0).
//	Processing – p, machine occupancy (> 0).
//	Delivery   – q, tail after leaving the machine (≥ 0).
type Job struct {
	ID         int
	Release    int
	Processing int
	Delivery   int
}

// Span returns r + p + q: the completion of the job when it runs alone.
func (j Job) Span() int { return j.Release + j.Processing + j.Delivery }

// ParameterError reports an out-of-range job parameter.
// It matches ErrMalformedInstance via errors.Is.
type ParameterError struct {
	JobID int
	Field string
	Value int
}

func (e ParameterError) Error() string {
	return fmt.Sprintf("jobs: job %d: invalid %s %d", e.JobID, e.Field, e.Value)
}

// Unwrap classifies the error as a malformed instance.
func (e ParameterError) Unwrap() error { return ErrMalformedInstance }

// validate checks the per-job invariants.
func (j Job) validate() error {
	if j.Release < 0 {
		return ParameterError{JobID: j.ID, Field: "release", Value: j.Release}
	}
	if j.Processing <= 0 {
		return ParameterError{JobID: j.ID, Field: "processing", Value: j.Processing}
	}
	if j.Delivery < 0 {
		return ParameterError{JobID: j.ID, Field: "delivery", Value: j.Delivery}
	}

	return nil
}
