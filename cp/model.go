package cp

import "fmt"

type varDef struct {
	name    string
	lo, hi  int
	boolean bool
}

// linear is Σ terms ≤ rhs, enforced while lit = val (always when lit < 0).
type linear struct {
	terms []Term
	rhs   int
	lit   VarID
	val   int
}

// Model collects variables, constraints, an optional objective and hints.
// A Model is not safe for concurrent mutation; Solve only reads it.
type Model struct {
	vars   []varDef
	cons   []linear
	obj    VarID
	hasObj bool
	hints  map[VarID]int
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{obj: -1, hints: make(map[VarID]int)}
}

// NewIntVar adds an integer variable with domain [lo, hi].
func (m *Model) NewIntVar(lo, hi int, name string) (VarID, error) {
	if lo > hi {
		return -1, fmt.Errorf("%w: %s [%d,%d]", ErrEmptyDomain, name, lo, hi)
	}
	m.vars = append(m.vars, varDef{name: name, lo: lo, hi: hi})

	return VarID(len(m.vars) - 1), nil
}

// NewBoolVar adds a 0/1 variable.
func (m *Model) NewBoolVar(name string) VarID {
	m.vars = append(m.vars, varDef{name: name, lo: 0, hi: 1, boolean: true})

	return VarID(len(m.vars) - 1)
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints returns the number of posted ≤ rows (EQ counts twice).
func (m *Model) NumConstraints() int { return len(m.cons) }

// Name returns the name of v.
func (m *Model) Name(v VarID) string {
	if !m.valid(v) {
		return ""
	}

	return m.vars[v].name
}

func (m *Model) valid(v VarID) bool { return v >= 0 && int(v) < len(m.vars) }

// AddLinear posts Σ terms (sense) rhs.
func (m *Model) AddLinear(terms []Term, sense Sense, rhs int) error {
	return m.add(terms, sense, rhs, -1, 0)
}

// AddLinearIf posts Σ terms (sense) rhs enforced only while lit = value.
func (m *Model) AddLinearIf(lit VarID, value int, terms []Term, sense Sense, rhs int) error {
	if !m.valid(lit) {
		return fmt.Errorf("%w: literal %d", ErrUnknownVar, lit)
	}
	if !m.vars[lit].boolean || (value != 0 && value != 1) {
		return fmt.Errorf("%w: %s = %d", ErrNotBoolean, m.vars[lit].name, value)
	}

	return m.add(terms, sense, rhs, lit, value)
}

func (m *Model) add(terms []Term, sense Sense, rhs int, lit VarID, val int) error {
	for _, t := range terms {
		if !m.valid(t.Var) {
			return fmt.Errorf("%w: %d", ErrUnknownVar, t.Var)
		}
	}
	le := make([]Term, 0, len(terms))
	for _, t := range terms {
		if t.Coef != 0 {
			le = append(le, t)
		}
	}

	if sense == LE || sense == EQ {
		m.cons = append(m.cons, linear{terms: le, rhs: rhs, lit: lit, val: val})
	}
	if sense == GE || sense == EQ {
		ge := make([]Term, len(le))
		for i, t := range le {
			ge[i] = Term{Var: t.Var, Coef: -t.Coef}
		}
		m.cons = append(m.cons, linear{terms: ge, rhs: -rhs, lit: lit, val: val})
	}

	return nil
}

// Minimize sets v as the objective to minimise.
func (m *Model) Minimize(v VarID) error {
	if !m.valid(v) {
		return fmt.Errorf("%w: objective %d", ErrUnknownVar, v)
	}
	m.obj, m.hasObj = v, true

	return nil
}

// Hint suggests a value for v. Hinted booleans are branched on the hinted
// value first; hints on integers are ignored by the search.
func (m *Model) Hint(v VarID, value int) error {
	if !m.valid(v) {
		return fmt.Errorf("%w: hint %d", ErrUnknownVar, v)
	}
	m.hints[v] = value

	return nil
}
