package lp

import (
	"math"

	"github.com/katalvlaran/rpq/matrix"
)

// tableau is the working state of one Solve call.
//
//	d        – (m+1)×(cols) dense tableau; row m holds reduced costs, last column the rhs
//	basis    – basis[i] is the column basic in row i
//	n        – structural columns [0, n)
//	artStart – artificial columns [artStart, rhs)
type tableau struct {
	d        *matrix.Dense
	basis    []int
	m, n     int
	artStart int
	rhs      int
	tol      float64
	maxIter  int
	iter     int
	done     <-chan struct{}
}

// doneCheckEvery is how many pivots run between looks at Options.Done.
const doneCheckEvery = 16

type stdRow struct {
	a     []float64
	sense Sense
	b     float64
}

// Solve minimises p with the two-phase simplex method.
//
// Errors:
//   - ErrDimensionMismatch, ErrNaN, ErrBadBounds for malformed problems.
//
// Infeasibility, unboundedness and the iteration limit are reported through
// Solution.Status, not as errors.
func Solve(p *Problem, opts Options) (Solution, error) {
	if err := p.validate(); err != nil {
		return Solution{}, err
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultOptions().Tolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}

	n := p.NumVars()
	for j := 0; j < n; j++ {
		if p.lower(j) > p.upper(j)+opts.Tolerance {
			return Solution{Status: Infeasible}, nil
		}
	}

	rows := standardRows(p)
	t, err := newTableau(rows, n, opts)
	if err != nil {
		return Solution{}, err
	}

	// Phase 1: drive the artificials to zero.
	if t.artStart < t.rhs {
		t.phaseOneObjective()
		st, err := t.iterate(true)
		if err != nil {
			return Solution{}, err
		}
		if st != Optimal {
			return Solution{Status: st, Iterations: t.iter}, nil
		}
		if infeas := -t.at(t.m, t.rhs); infeas > t.feasibilityTol(rows) {
			return Solution{Status: Infeasible, Iterations: t.iter}, nil
		}
		if err = t.driveOutArtificials(); err != nil {
			return Solution{}, err
		}
	}

	// Phase 2: the real objective, artificials barred.
	if err = t.phaseTwoObjective(p.Costs); err != nil {
		return Solution{}, err
	}
	st, err := t.iterate(false)
	if err != nil {
		return Solution{}, err
	}
	if st != Optimal {
		return Solution{Status: st, Iterations: t.iter}, nil
	}

	x := make([]float64, n)
	for i, b := range t.basis {
		if b < n {
			x[b] = t.at(i, t.rhs)
		}
	}
	var obj float64
	for j := range x {
		x[j] += p.lower(j)
		obj += p.Costs[j] * x[j]
	}

	return Solution{Status: Optimal, Objective: obj, X: x, Iterations: t.iter}, nil
}

// standardRows shifts lower bounds out, appends finite upper bounds as rows
// and makes every right-hand side non-negative.
func standardRows(p *Problem) []stdRow {
	var (
		n    = p.NumVars()
		rows = make([]stdRow, 0, len(p.Rows)+n)
		j    int
	)
	for _, r := range p.Rows {
		b := r.RHS
		for j = 0; j < n; j++ {
			b -= r.Coefs[j] * p.lower(j)
		}
		rows = append(rows, stdRow{a: append([]float64(nil), r.Coefs...), sense: r.Sense, b: b})
	}
	for j = 0; j < n; j++ {
		u := p.upper(j)
		if math.IsInf(u, 1) {
			continue
		}
		a := make([]float64, n)
		a[j] = 1
		rows = append(rows, stdRow{a: a, sense: LE, b: u - p.lower(j)})
	}

	for i := range rows {
		if rows[i].b >= 0 {
			continue
		}
		rows[i].b = -rows[i].b
		for j = range rows[i].a {
			rows[i].a[j] = -rows[i].a[j]
		}
		switch rows[i].sense {
		case LE:
			rows[i].sense = GE
		case GE:
			rows[i].sense = LE
		}
	}

	return rows
}

func newTableau(rows []stdRow, n int, opts Options) (*tableau, error) {
	var slacks, arts int
	for _, r := range rows {
		switch r.sense {
		case LE:
			slacks++
		case GE:
			slacks++
			arts++
		default:
			arts++
		}
	}

	var (
		m    = len(rows)
		cols = n + slacks + arts + 1
	)
	d, err := matrix.NewDense(m+1, cols)
	if err != nil {
		return nil, err
	}
	t := &tableau{
		d:        d,
		basis:    make([]int, m),
		m:        m,
		n:        n,
		artStart: n + slacks,
		rhs:      cols - 1,
		tol:      opts.Tolerance,
		maxIter:  opts.MaxIterations,
		done:     opts.Done,
	}

	var (
		s = n
		a = t.artStart
	)
	for i, r := range rows {
		row, _ := d.Row(i)
		copy(row, r.a)
		row[t.rhs] = r.b
		switch r.sense {
		case LE:
			row[s] = 1
			t.basis[i] = s
			s++
		case GE:
			row[s] = -1
			row[a] = 1
			t.basis[i] = a
			s++
			a++
		default:
			row[a] = 1
			t.basis[i] = a
			a++
		}
	}

	return t, nil
}

func (t *tableau) at(i, j int) float64 {
	v, _ := t.d.At(i, j)

	return v
}

// phaseOneObjective writes reduced costs of "minimise Σ artificials".
func (t *tableau) phaseOneObjective() {
	obj, _ := t.d.Row(t.m)
	for j := range obj {
		obj[j] = 0
	}
	for i, b := range t.basis {
		if b < t.artStart {
			continue
		}
		row, _ := t.d.Row(i)
		for j := 0; j < t.artStart; j++ {
			obj[j] -= row[j]
		}
		obj[t.rhs] -= row[t.rhs]
	}
}

// phaseTwoObjective writes reduced costs of c·y against the current basis.
func (t *tableau) phaseTwoObjective(costs []float64) error {
	obj, _ := t.d.Row(t.m)
	for j := range obj {
		obj[j] = 0
	}
	copy(obj, costs)
	for i, b := range t.basis {
		if b >= t.n || costs[b] == 0 {
			continue
		}
		if err := t.d.AddScaledRow(t.m, i, -costs[b]); err != nil {
			return err
		}
	}

	return nil
}

// feasibilityTol scales the phase-1 acceptance threshold with the rhs magnitude.
func (t *tableau) feasibilityTol(rows []stdRow) float64 {
	var big float64 = 1
	for _, r := range rows {
		big = math.Max(big, r.b)
	}

	return math.Max(1e-7, t.tol*big*10)
}

// iterate pivots until no reduced cost is negative (Bland's rule).
func (t *tableau) iterate(allowArtificial bool) (Status, error) {
	limit := t.artStart
	if allowArtificial {
		limit = t.rhs
	}

	for {
		obj, _ := t.d.Row(t.m)
		enter := -1
		for j := 0; j < limit; j++ {
			if obj[j] < -t.tol {
				enter = j
				break
			}
		}
		if enter < 0 {
			return Optimal, nil
		}
		if t.iter >= t.maxIter || t.cancelled() {
			return IterationLimit, nil
		}

		var (
			leave = -1
			best  float64
		)
		for i := 0; i < t.m; i++ {
			row, _ := t.d.Row(i)
			a := row[enter]
			if a <= t.tol {
				continue
			}
			ratio := row[t.rhs] / a
			switch {
			case leave < 0, ratio < best-t.tol:
				leave, best = i, ratio
			case ratio <= best+t.tol && t.basis[i] < t.basis[leave]:
				leave, best = i, ratio
			}
		}
		if leave < 0 {
			return Unbounded, nil
		}

		if err := t.d.Pivot(leave, enter, t.tol); err != nil {
			return 0, err
		}
		t.basis[leave] = enter
		t.iter++
	}
}

// cancelled polls the done channel every doneCheckEvery pivots.
func (t *tableau) cancelled() bool {
	if t.done == nil || t.iter%doneCheckEvery != 0 {
		return false
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// driveOutArtificials pivots zero-level artificials out of the basis. Rows
// with no usable non-artificial entry are redundant and keep their artificial.
func (t *tableau) driveOutArtificials() error {
	for i, b := range t.basis {
		if b < t.artStart {
			continue
		}
		row, _ := t.d.Row(i)
		for j := 0; j < t.artStart; j++ {
			if math.Abs(row[j]) <= t.tol {
				continue
			}
			if err := t.d.Pivot(i, j, t.tol); err != nil {
				return err
			}
			t.basis[i] = j
			break
		}
	}

	return nil
}
