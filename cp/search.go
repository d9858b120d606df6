package cp

import "context"

type trailEntry struct {
	v      VarID
	lo, hi int
}

// searcher is the mutable state of one Solve call.
type searcher struct {
	ctx  context.Context
	m    *Model
	opts Options

	lo, hi  []int
	trail   []trailEntry
	watch   [][]int // var → constraint indices reading it
	queue   []int
	inQueue []bool

	nodes, failures, solutions int
	stopped                    bool

	hasBest bool
	best    int
	bestVal []int
}

// Solve searches m for a solution, minimising the objective when one is set.
//
// Limits and cancellation are reported as Status Unproven with the best
// solution found so far.
func Solve(ctx context.Context, m *Model, opts ...Option) Result {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.TimeLimit)
		defer cancel()
	}

	s := newSearcher(ctx, m, o)
	if s.propagateAll() {
		s.dfs()
	} else {
		s.failures++
	}

	res := Result{
		HasSolution: s.hasBest,
		Objective:   s.best,
		Values:      s.bestVal,
		Nodes:       s.nodes,
		Failures:    s.failures,
		Solutions:   s.solutions,
	}
	switch {
	case s.stopped:
		res.Status = Unproven
	case s.hasBest:
		res.Status = Optimal
	default:
		res.Status = Infeasible
	}

	return res
}

func newSearcher(ctx context.Context, m *Model, o Options) *searcher {
	n := len(m.vars)
	s := &searcher{
		ctx:     ctx,
		m:       m,
		opts:    o,
		lo:      make([]int, n),
		hi:      make([]int, n),
		watch:   make([][]int, n),
		inQueue: make([]bool, len(m.cons)),
	}
	for i, v := range m.vars {
		s.lo[i], s.hi[i] = v.lo, v.hi
	}
	for ci, c := range m.cons {
		for _, t := range c.terms {
			s.watch[t.Var] = append(s.watch[t.Var], ci)
		}
		if c.lit >= 0 {
			s.watch[c.lit] = append(s.watch[c.lit], ci)
		}
	}

	return s
}

func (s *searcher) limitHit() bool {
	if s.ctx.Err() != nil {
		return true
	}

	return s.opts.NodeLimit > 0 && s.nodes >= s.opts.NodeLimit
}

// setBounds narrows v to [lo, hi] ∩ dom(v); false on a wipe-out.
func (s *searcher) setBounds(v VarID, lo, hi int) bool {
	if lo < s.lo[v] {
		lo = s.lo[v]
	}
	if hi > s.hi[v] {
		hi = s.hi[v]
	}
	if lo > hi {
		return false
	}
	if lo == s.lo[v] && hi == s.hi[v] {
		return true
	}
	s.trail = append(s.trail, trailEntry{v: v, lo: s.lo[v], hi: s.hi[v]})
	s.lo[v], s.hi[v] = lo, hi
	for _, ci := range s.watch[v] {
		if !s.inQueue[ci] {
			s.inQueue[ci] = true
			s.queue = append(s.queue, ci)
		}
	}

	return true
}

// undo restores domains to the trail length mark.
func (s *searcher) undo(mark int) {
	for i := len(s.trail) - 1; i >= mark; i-- {
		e := s.trail[i]
		s.lo[e.v], s.hi[e.v] = e.lo, e.hi
	}
	s.trail = s.trail[:mark]
}

func (s *searcher) propagateAll() bool {
	for ci := range s.m.cons {
		if !s.inQueue[ci] {
			s.inQueue[ci] = true
			s.queue = append(s.queue, ci)
		}
	}

	return s.propagate()
}

// propagate runs queued constraints to a fixpoint.
func (s *searcher) propagate() bool {
	for head := 0; head < len(s.queue); head++ {
		ci := s.queue[head]
		s.inQueue[ci] = false
		if !s.propagateOne(ci) {
			for _, rest := range s.queue[head+1:] {
				s.inQueue[rest] = false
			}
			s.queue = s.queue[:0]

			return false
		}
	}
	s.queue = s.queue[:0]

	return true
}

func (s *searcher) minActivity(c *linear) int {
	var sum int
	for _, t := range c.terms {
		if t.Coef > 0 {
			sum += t.Coef * s.lo[t.Var]
		} else {
			sum += t.Coef * s.hi[t.Var]
		}
	}

	return sum
}

func (s *searcher) propagateOne(ci int) bool {
	c := &s.m.cons[ci]
	minAct := s.minActivity(c)

	if c.lit >= 0 {
		lo, hi := s.lo[c.lit], s.hi[c.lit]
		switch {
		case lo == hi && lo != c.val:
			return true
		case lo != hi:
			if minAct > c.rhs {
				return s.setBounds(c.lit, 1-c.val, 1-c.val)
			}
			return true
		}
	}

	if minAct > c.rhs {
		return false
	}
	for _, t := range c.terms {
		if t.Coef > 0 {
			slack := c.rhs - (minAct - t.Coef*s.lo[t.Var])
			if !s.setBounds(t.Var, s.lo[t.Var], floorDiv(slack, t.Coef)) {
				return false
			}
		} else {
			slack := c.rhs - (minAct - t.Coef*s.hi[t.Var])
			if !s.setBounds(t.Var, ceilDiv(slack, t.Coef), s.hi[t.Var]) {
				return false
			}
		}
	}

	return true
}

// pick returns the next branching variable: booleans first, then integers.
func (s *searcher) pick() (VarID, bool) {
	intVar := VarID(-1)
	for i, v := range s.m.vars {
		if s.lo[i] == s.hi[i] {
			continue
		}
		if v.boolean {
			return VarID(i), true
		}
		if intVar < 0 {
			intVar = VarID(i)
		}
	}

	return intVar, intVar >= 0
}

func (s *searcher) record() {
	s.solutions++
	val := append([]int(nil), s.lo...)
	s.bestVal = val
	s.hasBest = true
	if s.m.hasObj {
		s.best = val[s.m.obj]
	}
}

// try narrows v to [lo, hi], propagates and recurses; domains are restored after.
func (s *searcher) try(v VarID, lo, hi int) {
	mark := len(s.trail)
	if s.setBounds(v, lo, hi) && s.propagate() {
		s.dfs()
	} else {
		s.failures++
	}
	s.undo(mark)
}

func (s *searcher) dfs() {
	if s.stopped || (s.hasBest && !s.m.hasObj) {
		return
	}
	if s.limitHit() {
		s.stopped = true
		return
	}
	s.nodes++

	if s.hasBest && s.m.hasObj && s.hi[s.m.obj] >= s.best {
		mark := len(s.trail)
		if s.setBounds(s.m.obj, s.lo[s.m.obj], s.best-1) && s.propagate() {
			s.dfs()
		} else {
			s.failures++
		}
		s.undo(mark)
		return
	}

	v, ok := s.pick()
	if !ok {
		s.record()
		return
	}

	if s.m.vars[v].boolean {
		first := 0
		if h, hinted := s.m.hints[v]; hinted && (h == 0 || h == 1) {
			first = h
		}
		s.try(v, first, first)
		s.try(v, 1-first, 1-first)
		return
	}

	lo := s.lo[v]
	s.try(v, lo, lo)
	s.try(v, lo+1, s.hi[v])
}
