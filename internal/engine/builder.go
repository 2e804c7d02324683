package engine

// Clause is a disjunction of literals, in the same []int32-compatible
// shape gophersat's solver.ParseSliceNb expects (via ToIntClauses).
type Clause []Lit

// Builder accumulates CNF clauses while compiling Formula trees via
// Tseitin transformation, and fresh boolean variables on demand (for both
// Tseitin's own auxiliary literals and order-encoded package version
// variables allocated by internal/satengine).
type Builder struct {
	nextVar  int32
	clauses  []Clause
	trueLit  Lit
	falseSet bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewVar allocates and returns a fresh literal (always positive).
func (b *Builder) NewVar() Lit {
	b.nextVar++
	return Lit(b.nextVar)
}

// NumVars returns how many variables have been allocated so far — the
// nbVars argument a backend passes to solver.ParseSliceNb.
func (b *Builder) NumVars() int32 { return b.nextVar }

// Clauses returns every clause accumulated so far.
func (b *Builder) Clauses() []Clause { return b.clauses }

// AddClause appends a raw clause (a disjunction of literals) directly,
// for callers (package ground bounds, order-consistency implications)
// that already know the CNF shape they want without going through
// Tseitin.
func (b *Builder) AddClause(lits ...Lit) {
	c := make(Clause, len(lits))
	copy(c, lits)
	b.clauses = append(b.clauses, c)
}

// AssertUnit asserts a single literal as a unit clause.
func (b *Builder) AssertUnit(l Lit) {
	b.AddClause(l)
}

// trueConst returns a literal forced true by a reserved unit clause,
// allocating it lazily the first time True()/False() is compiled.
func (b *Builder) trueConst() Lit {
	if b.trueLit == 0 {
		b.trueLit = b.NewVar()
		b.AddClause(b.trueLit)
	}
	return b.trueLit
}

// Tseitin compiles a Formula into an equivalent literal, adding whatever
// auxiliary variables and defining clauses are needed. Equivalence means:
// in any model of the returned clauses, the literal is true iff the
// formula would evaluate to true.
func (b *Builder) Tseitin(f *Formula) Lit {
	switch f.Kind {
	case FLit:
		return f.Lit
	case FTrue:
		return b.trueConst()
	case FFalse:
		return b.trueConst().Not()
	case FNot:
		return b.Tseitin(f.L).Not()
	case FAnd:
		la := b.Tseitin(f.L)
		lb := b.Tseitin(f.R)
		v := b.NewVar()
		// v <-> (la ∧ lb)
		b.AddClause(v.Not(), la)
		b.AddClause(v.Not(), lb)
		b.AddClause(v, la.Not(), lb.Not())
		return v
	case FOr:
		la := b.Tseitin(f.L)
		lb := b.Tseitin(f.R)
		v := b.NewVar()
		// v <-> (la ∨ lb)
		b.AddClause(v.Not(), la, lb)
		b.AddClause(v, la.Not())
		b.AddClause(v, lb.Not())
		return v
	case FImplies:
		// a -> b  ==  ¬a ∨ b
		return b.Tseitin(Or(Not(f.L), f.R))
	default:
		panic("depsolve: unreachable formula kind in Tseitin")
	}
}

// AssertFormula compiles f and asserts its literal as true.
func (b *Builder) AssertFormula(f *Formula) {
	b.AssertUnit(b.Tseitin(f))
}

// AtMostK adds a Sinz sequential-counter encoding of "at most k of the
// given (possibly weighted) literals are true", where a weight > 1 is
// realized by duplicating the literal that many times — duplicate true
// literals in an unweighted cardinality sum legitimately contribute one
// count each, so this is a sound reduction from the weighted to the
// unweighted case.
func (b *Builder) AtMostK(lits []Lit, weights []int, k int) {
	var expanded []Lit
	for i, l := range lits {
		w := 1
		if weights != nil {
			w = weights[i]
		}
		for j := 0; j < w; j++ {
			expanded = append(expanded, l)
		}
	}
	b.atMostKSinz(expanded, k)
}

// atMostKSinz is the unweighted Sinz sequential-counter encoder: for n
// literals x_1..x_n and bound k, it introduces auxiliary "register"
// literals s_{i,j} (1<=i<=n, 1<=j<=k) meaning "at least j of x_1..x_i are
// true", and clauses enforcing the registers are consistent with the
// inputs and with each other, plus, for every i >= 2, a clause forbidding
// x_i together with s_{i-1,k} — the standard textbook construction.
func (b *Builder) atMostKSinz(x []Lit, k int) {
	n := len(x)
	if k < 0 {
		// No count of true literals is <= a negative bound: assert false.
		b.AssertUnit(b.trueConst().Not())
		return
	}
	if k >= n {
		return // trivially satisfied, no clauses needed
	}
	if k == 0 {
		for _, l := range x {
			b.AssertUnit(l.Not())
		}
		return
	}

	s := make([][]Lit, n+1)
	for i := 1; i <= n; i++ {
		s[i] = make([]Lit, k+1)
		for j := 1; j <= k; j++ {
			s[i][j] = b.NewVar()
		}
	}

	// x_1 -> s_{1,1}
	b.AddClause(x[0].Not(), s[1][1])
	// s_{1,j} = false for j > 1 (no clause needed; absence of support
	// combined with the rest of the encoding keeps it unset/irrelevant).
	for i := 2; i <= n; i++ {
		// x_i -> s_{i,1}
		b.AddClause(x[i-1].Not(), s[i][1])
		// s_{i-1,1} -> s_{i,1}
		b.AddClause(s[i-1][1].Not(), s[i][1])
		for j := 2; j <= k; j++ {
			// (x_i ∧ s_{i-1,j-1}) -> s_{i,j}
			b.AddClause(x[i-1].Not(), s[i-1][j-1].Not(), s[i][j])
			// s_{i-1,j} -> s_{i,j}
			b.AddClause(s[i-1][j].Not(), s[i][j])
		}
		// x_i ∧ s_{i-1,k} -> false  (would make count exceed k)
		b.AddClause(x[i-1].Not(), s[i-1][k].Not())
	}
}
