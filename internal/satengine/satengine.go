// Package satengine implements internal/engine's abstract solving surface
// against github.com/crillab/gophersat, the only SAT/SMT-capable solver
// anywhere in the example corpus. A package's bounded version variable is
// order-encoded into N boolean "at-least" threshold literals; the dual
// encoder (internal/encode) builds engine.Formula trees over those
// literals, which this package Tseitin-compiles and hands to gophersat
// exactly the way internal/core/apt_solver.go already does
// (solver.ParseSliceNb / problem.SetCostFunc / solver.New / sat.Minimize /
// sat.Model).
package satengine

import (
	"github.com/crillab/gophersat/solver"

	"depsolve/internal/engine"
	"depsolve/internal/model"
)

// IntVar is a package's chosen-version variable, order-encoded as N
// boolean threshold literals Ge(1)..Ge(N), with Ge(k) meaning "the chosen
// version is >= k". Ge(0) is definitionally true and never allocated.
type IntVar struct {
	n  model.Version
	ge []engine.Lit // index 1..n valid; index 0 unused
}

// Ge returns a formula for "chosen version >= k".
func (v *IntVar) Ge(k model.Version) *engine.Formula {
	if k <= 0 {
		return engine.True()
	}
	if k > v.n {
		return engine.False()
	}
	return engine.FromLit(v.ge[k])
}

// Le returns a formula for "chosen version <= k", defined as ¬Ge(k+1).
func (v *IntVar) Le(k model.Version) *engine.Formula {
	return engine.Not(v.Ge(k + 1))
}

// Eq returns a formula for "chosen version == k".
func (v *IntVar) Eq(k model.Version) *engine.Formula {
	if k == 0 {
		return v.Le(0)
	}
	return engine.And(v.Ge(k), v.Le(k))
}

// GeLit returns the raw threshold literal for Ge(k), 1<=k<=N, for callers
// (internal/optimize) that build weighted objective sums directly over
// the order encoding instead of going through Tseitin.
func (v *IntVar) GeLit(k model.Version) engine.Lit {
	return v.ge[k]
}

// N returns the variable's version bound.
func (v *IntVar) N() model.Version { return v.n }

// trackedAssertion is one constraint asserted via AssertAndTrack: its
// compiled literal, kept so a deletion-based unsat-core search can toggle
// it on/off without recompiling the formula.
type trackedAssertion struct {
	lit engine.Lit
}

// Engine is the gophersat-backed realization of the dual encoder's
// target: it compiles formulas to CNF via internal/engine's Tseitin
// transform, tracks top-level assertions for unsat-core extraction, and
// solves/minimizes through gophersat.
type Engine struct {
	b       *engine.Builder
	tracked []trackedAssertion
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{b: engine.NewBuilder()}
}

// NewIntVar allocates an order-encoded integer variable ranging over
// {0,...,n}, including its order-consistency clauses (Ge(k+1) -> Ge(k)).
func (e *Engine) NewIntVar(n model.Version) *IntVar {
	v := &IntVar{n: n, ge: make([]engine.Lit, n+1)}
	for k := model.Version(1); k <= n; k++ {
		v.ge[k] = e.b.NewVar()
	}
	for k := model.Version(1); k < n; k++ {
		e.b.AddClause(v.ge[k+1].Not(), v.ge[k])
	}
	return v
}

// Assert compiles f and asserts it unconditionally (not eligible for
// unsat-core extraction — used for structural constraints the caller
// never expects to need decoded, if any; in practice the driver tracks
// everything the dual encoder emits).
func (e *Engine) Assert(f *engine.Formula) {
	e.b.AssertFormula(f)
}

// AssertAndTrack compiles f, asserts it, and returns an id a later
// MinimalUnsatCore call can report back as "required".
func (e *Engine) AssertAndTrack(f *engine.Formula) int {
	lit := e.b.Tseitin(f)
	id := len(e.tracked)
	e.tracked = append(e.tracked, trackedAssertion{lit: lit})
	return id
}

// AssertAtMostK adds a cardinality constraint bounding the weighted sum of
// lits to at most k, used by internal/optimize to pin a first-stage
// lexicographic objective before minimizing the second stage.
func (e *Engine) AssertAtMostK(lits []engine.Lit, weights []int, k int) {
	e.b.AtMostK(lits, weights, k)
}

// Compile Tseitin-compiles f into an equivalent literal without asserting
// it, for callers (internal/optimize's model metrics, its co-optimal
// branch assumptions) that need a reusable literal handle for a formula
// built over the order encoding. Not safe to call concurrently with other
// Compile/Assert*/NewIntVar calls on the same Engine — callers that want
// to explore branches in parallel (see CheckAssuming) must finish all
// Compile calls up front, single-threaded, before fanning out.
func (e *Engine) Compile(f *engine.Formula) engine.Lit {
	return e.b.Tseitin(f)
}

// CheckAssuming solves for a satisfying assignment of the asserted +
// tracked constraints plus the given extra unit-literal assumptions. It
// only reads the Builder's accumulated clauses (via rawClauses) and the
// tracked list, and builds an entirely local gophersat problem/solver per
// call, so concurrent callers are safe as long as no goroutine is still
// calling Compile/Assert*/NewIntVar.
func (e *Engine) CheckAssuming(extra []engine.Lit) (bool, []bool) {
	return e.checkWithCost(nil, nil, nil, extra...)
}

func (e *Engine) rawClauses() [][]int {
	clauses := e.b.Clauses()
	out := make([][]int, 0, len(clauses))
	for _, c := range clauses {
		ints := make([]int, len(c))
		for i, l := range c {
			ints[i] = int(l)
		}
		out = append(out, ints)
	}
	return out
}

// checkWithCost builds a fresh gophersat problem from the builder's
// structural clauses plus whichever tracked assertions are active, with
// the given (possibly empty) weighted objective, and solves it. gophersat
// is used non-incrementally throughout this package — a fresh Solver is
// built per call — matching the only attested call sequence in the
// corpus (apt_solver.go's solveSAT rebuilds its problem/solver every time
// too).
func (e *Engine) checkWithCost(costLits []engine.Lit, costWeights []int, active []bool, extra ...engine.Lit) (ok bool, sModel []bool) {
	clauses := e.rawClauses()
	for i, t := range e.tracked {
		if active == nil || active[i] {
			clauses = append(clauses, []int{int(t.lit)})
		}
	}
	for _, l := range extra {
		clauses = append(clauses, []int{int(l)})
	}
	nbVars := int(e.b.NumVars())
	problem := solver.ParseSliceNb(clauses, nbVars)
	if len(costLits) > 0 {
		sLits := make([]solver.Lit, len(costLits))
		for i, l := range costLits {
			sLits[i] = solver.IntToLit(int32(l))
		}
		problem.SetCostFunc(sLits, costWeights)
	}
	sat := solver.New(problem)
	cost := sat.Minimize()
	if cost < 0 {
		return false, nil
	}
	return true, sat.Model()
}

// CheckResult is the outcome of a Check call.
type CheckResult struct {
	Satisfiable bool
	Model       []bool // 0-indexed: Model[v-1] is variable v's value
}

// Check solves for any satisfying assignment of the asserted + tracked
// constraints, with no optimization objective.
func (e *Engine) Check() CheckResult {
	ok, m := e.checkWithCost(nil, nil, nil)
	return CheckResult{Satisfiable: ok, Model: m}
}

// ModelValue reads a literal's truth value out of a solved model.
func ModelValue(m []bool, l engine.Lit) bool {
	v := l.Var()
	val := m[v-1]
	if l < 0 {
		return !val
	}
	return val
}

// Minimize solves while minimizing the weighted sum of costLits, returning
// the achieved cost, the model, and whether the problem was satisfiable at
// all.
func (e *Engine) Minimize(costLits []engine.Lit, costWeights []int) (cost int, sModel []bool, ok bool) {
	clauses := e.rawClauses()
	for _, t := range e.tracked {
		clauses = append(clauses, []int{int(t.lit)})
	}
	nbVars := int(e.b.NumVars())
	problem := solver.ParseSliceNb(clauses, nbVars)
	sLits := make([]solver.Lit, len(costLits))
	for i, l := range costLits {
		sLits[i] = solver.IntToLit(int32(l))
	}
	problem.SetCostFunc(sLits, costWeights)
	sat := solver.New(problem)
	c := sat.Minimize()
	if c < 0 {
		return 0, nil, false
	}
	return c, sat.Model(), true
}

// MinimalUnsatCore deletion-searches for a minimal subset of tracked
// assertion ids whose conjunction (with the structural clauses) is still
// unsatisfiable: start from the full set (already known unsat), then try
// dropping each tracked assertion in turn — if dropping it makes the rest
// satisfiable, it was required and is kept; otherwise it is permanently
// dropped. Returns nil if the full problem turns out satisfiable.
func (e *Engine) MinimalUnsatCore() []int {
	n := len(e.tracked)
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	if ok, _ := e.checkWithCost(nil, nil, active); ok {
		return nil
	}
	var core []int
	for i := 0; i < n; i++ {
		active[i] = false
		if ok, _ := e.checkWithCost(nil, nil, active); ok {
			active[i] = true
			core = append(core, i)
		}
	}
	return core
}
