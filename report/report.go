// Package report renders solver results for people and cross-checks them.
//
// One line is written per engine, a warning line per engine that did not
// prove optimality, and a closing cross-check line. Two engines that both
// claim optimality with different values expose a modelling defect
// (ErrObjectiveMismatch); an Infeasible claim is impossible for a valid RPQ
// instance and is reported as ErrInternalInconsistency.
package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/rpq/solver"
)

// Sentinel errors.
var (
	// ErrObjectiveMismatch indicates two optimal results with different objectives.
	ErrObjectiveMismatch = errors.New("report: optimal objectives disagree")

	// ErrInternalInconsistency indicates an engine claimed a valid instance infeasible.
	ErrInternalInconsistency = errors.New("report: engine reported a valid instance infeasible")

	// ErrNoResults indicates Report was called with nothing to report.
	ErrNoResults = errors.New("report: no results")
)

// Summary condenses a set of results.
type Summary struct {
	Engines   int
	Optimal   int // engines with a proven optimum
	Objective int // the agreed optimum, or the best known value when none is proven
	Proven    bool
	HasValue  bool
	Unproven  []string
}

// Reporter writes reports to an io.Writer.
type Reporter struct {
	w   io.Writer
	log *slog.Logger
}

// New returns a Reporter writing to w; a nil logger means slog.Default().
func New(w io.Writer, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &Reporter{w: w, log: logger}
}

// Report writes the report of results and cross-checks them.
//
// Errors:
//   - ErrNoResults for an empty slice.
//   - ErrInternalInconsistency when any engine reports Infeasible.
//   - ErrObjectiveMismatch when optimal objectives differ.
//   - write errors of the underlying writer.
//
// The report is written in full before a consistency error is returned.
func (r *Reporter) Report(results []solver.Result) (Summary, error) {
	if len(results) == 0 {
		return Summary{}, ErrNoResults
	}

	var (
		sum      = Summary{Engines: len(results)}
		b        strings.Builder
		failures []error
	)
	for _, res := range results {
		fmt.Fprintf(&b, "engine=%s status=%s", res.Engine, res.Status)
		if res.HasObjective {
			fmt.Fprintf(&b, " objective=%d", res.Objective)
		}
		fmt.Fprintf(&b, " nodes=%d duration=%s", res.Nodes, res.Duration)
		if len(res.Sequence) > 0 {
			fmt.Fprintf(&b, " sequence=%v", res.Sequence)
		}
		b.WriteByte('\n')

		switch res.Status {
		case solver.Optimal:
			if sum.Proven && res.Objective != sum.Objective {
				failures = append(failures, fmt.Errorf("%w: %d vs %s=%d",
					ErrObjectiveMismatch, sum.Objective, res.Engine, res.Objective))
				continue
			}
			sum.Optimal++
			sum.Proven, sum.HasValue, sum.Objective = true, true, res.Objective
		case solver.Infeasible:
			fmt.Fprintf(&b, "error: engine=%s reported the instance infeasible (modelling defect)\n", res.Engine)
			failures = append(failures, fmt.Errorf("%w: %s", ErrInternalInconsistency, res.Engine))
		default:
			sum.Unproven = append(sum.Unproven, res.Engine)
			if res.HasObjective {
				fmt.Fprintf(&b, "warning: engine=%s did not prove optimality, best known objective=%d\n", res.Engine, res.Objective)
				if !sum.Proven && (!sum.HasValue || res.Objective < sum.Objective) {
					sum.HasValue, sum.Objective = true, res.Objective
				}
			} else {
				fmt.Fprintf(&b, "warning: engine=%s did not prove optimality and found no schedule\n", res.Engine)
			}
		}
	}

	switch {
	case len(failures) > 0:
		b.WriteString("cross-check: FAILED\n")
	case sum.Optimal > 1:
		fmt.Fprintf(&b, "cross-check: %d engines agree on objective=%d\n", sum.Optimal, sum.Objective)
	case sum.Optimal == 1:
		fmt.Fprintf(&b, "cross-check: skipped, one proven optimum objective=%d\n", sum.Objective)
	default:
		b.WriteString("cross-check: skipped, no proven optimum\n")
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return sum, err
	}

	if err := errors.Join(failures...); err != nil {
		r.log.Error("cross-check failed", slog.Any("error", err))
		return sum, err
	}
	if len(sum.Unproven) > 0 {
		r.log.Warn("optimality not proven", slog.Any("engines", sum.Unproven))
	}

	return sum, nil
}
