// Package engine provides the solver-facing boolean formula machinery
// shared by every concrete SMT/FD engine backend: a small formula tree,
// a Tseitin CNF compiler, and a Sinz sequential-counter cardinality
// encoder for pseudo-boolean "at most K" constraints. None of this talks
// to a solver directly — a backend (see internal/satengine) hands the
// CNF clauses this package produces to whatever solver it wraps.
package engine

// Lit is a signed, 1-indexed propositional literal: the same
// representation gophersat's raw clause lists use, so a Builder's output
// can be handed to solver.ParseSliceNb without translation.
type Lit int32

// Not negates a literal.
func (l Lit) Not() Lit { return -l }

// Var returns the (always positive) variable id a literal refers to.
func (l Lit) Var() int32 {
	if l < 0 {
		return int32(-l)
	}
	return int32(l)
}

// FormulaKind distinguishes the shapes a Formula node can take.
type FormulaKind int

const (
	FLit FormulaKind = iota
	FNot
	FAnd
	FOr
	FImplies
	FTrue
	FFalse
)

// Formula is a boolean formula built over Lits, And/Or/Not/Implies, and
// the two constants. Compound nodes reference operands by pointer; a
// Formula tree is built once per constraint and immediately compiled by a
// Builder, so there is no need for arena-style reuse here (unlike the
// domain-vocabulary mirror in internal/symbolic, which the caller keeps
// around for unsat-core decoding).
type Formula struct {
	Kind FormulaKind
	Lit  Lit
	L, R *Formula
}

// FromLit lifts a literal into a Formula leaf.
func FromLit(l Lit) *Formula { return &Formula{Kind: FLit, Lit: l} }

// True is the constant "true" formula.
func True() *Formula { return &Formula{Kind: FTrue} }

// False is the constant "false" formula.
func False() *Formula { return &Formula{Kind: FFalse} }

// Not builds ¬f, collapsing double negation eagerly so a caller never has
// to compile a chain of redundant nots.
func Not(f *Formula) *Formula {
	if f.Kind == FNot {
		return f.L
	}
	return &Formula{Kind: FNot, L: f}
}

// And builds a ∧ b.
func And(a, b *Formula) *Formula { return &Formula{Kind: FAnd, L: a, R: b} }

// Or builds a ∨ b.
func Or(a, b *Formula) *Formula { return &Formula{Kind: FOr, L: a, R: b} }

// Implies builds a → b.
func Implies(a, b *Formula) *Formula { return &Formula{Kind: FImplies, L: a, R: b} }
