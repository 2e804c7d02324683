// Package encode is the dual encoder: for every requirement, requirement
// set, package, and the top-level closure itself, it emits a solver
// formula and, in lock-step, the symbolic mirror expression describing
// the same constraint in domain vocabulary. The two are always emitted
// together through the same continuation so they can never drift apart.
package encode

import (
	"depsolve/internal/engine"
	"depsolve/internal/model"
	"depsolve/internal/rangeset"
	"depsolve/internal/satengine"
	"depsolve/internal/symbolic"
)

// Cont receives one emitted constraint: its solver formula and its
// symbolic mirror.
type Cont func(f *engine.Formula, sym symbolic.Ref)

// Encoder holds the per-resolution state shared across every constraint
// emitted: the engine building order-encoded IntVars, the arena building
// mirror expressions, and the package -> IntVar cache so every
// requirement referencing the same package reuses one variable.
type Encoder struct {
	eng   *satengine.Engine
	arena *symbolic.Arena
	vars  map[model.PackageID]*satengine.IntVar
}

// New returns an Encoder backed by the given engine and arena.
func New(eng *satengine.Engine, arena *symbolic.Arena) *Encoder {
	return &Encoder{eng: eng, arena: arena, vars: map[model.PackageID]*satengine.IntVar{}}
}

// Vars returns the package -> IntVar map accumulated so far, for callers
// (plan extraction, the optimizer) that need to read back the order
// encoding after all constraints have been emitted.
func (enc *Encoder) Vars() map[model.PackageID]*satengine.IntVar {
	return enc.vars
}

// IntVar returns the (creating if absent) order-encoded version variable
// for pkg, sized to the package's known version count.
func (enc *Encoder) IntVar(repo *model.Repository, pkg model.PackageID) *satengine.IntVar {
	if v, ok := enc.vars[pkg]; ok {
		return v
	}
	p := repo.GetPackageUnchecked(pkg)
	v := enc.eng.NewIntVar(p.NewestVersionNumber())
	enc.vars[pkg] = v
	return v
}

func verAtom(kind symbolic.AtomicKind, pkg model.PackageID, ver model.Version) symbolic.AtomicExpr {
	return symbolic.AtomicExpr{Kind: kind, Package: uint32(pkg), Version: uint64(ver)}
}

// RequirementConstraints emits the single constraint "the chosen version
// of req.Package lies in the union of req.Versions" (or, for a RangeAll
// requirement, "req.Package is installed at all").
func (enc *Encoder) RequirementConstraints(repo *model.Repository, req model.Requirement, cont Cont) {
	v := enc.IntVar(repo, req.Package)

	var formula *engine.Formula = engine.False()
	symExpr := enc.arena.Bot()
	isBot := true

	for _, r := range rangeset.MergeAndSort(req.Versions) {
		switch r.Kind {
		case model.RangeAll:
			formula = engine.Not(v.Eq(0))
			symExpr = enc.arena.Not(enc.arena.AtomExpr(verAtom(symbolic.VerEq, req.Package, 0)))
			isBot = false
			goto emit
		case model.RangePoint:
			f := v.Eq(r.Point)
			sym := enc.arena.AtomExpr(verAtom(symbolic.VerEq, req.Package, r.Point))
			if isBot {
				formula, symExpr, isBot = f, sym, false
			} else {
				formula = engine.Or(formula, f)
				symExpr = enc.arena.Or(sym, symExpr)
			}
		default: // RangeInterval
			f := engine.And(v.Ge(r.Lower), v.Le(r.Upper))
			sym := enc.arena.And(
				enc.arena.AtomExpr(verAtom(symbolic.VerGE, req.Package, r.Lower)),
				enc.arena.AtomExpr(verAtom(symbolic.VerLE, req.Package, r.Upper)),
			)
			if isBot {
				formula, symExpr, isBot = f, sym, false
			} else {
				formula = engine.Or(formula, f)
				symExpr = enc.arena.Or(sym, symExpr)
			}
		}
	}

emit:
	cont(formula, symExpr)
}

// RequirementSetConstraints emits every dependency's constraint as-is and
// every conflict's constraint negated.
func (enc *Encoder) RequirementSetConstraints(repo *model.Repository, rs model.RequirementSet, cont Cont) {
	for _, dep := range rs.Dependencies {
		enc.RequirementConstraints(repo, dep, cont)
	}
	reversedCont := func(f *engine.Formula, sym symbolic.Ref) {
		cont(engine.Not(f), enc.arena.Not(sym))
	}
	for _, anti := range rs.Conflicts {
		enc.RequirementConstraints(repo, anti, reversedCont)
	}
}

// PackageConstraints emits a package's ground bounds (0 <= V <= N) and,
// for every version 1..=N, an implication from "V == that version" to the
// version's own requirement-set constraints.
func (enc *Encoder) PackageConstraints(repo *model.Repository, pkg model.Package, cont Cont) {
	v := enc.IntVar(repo, pkg.ID)

	cont(v.Ge(0), enc.arena.AtomExpr(verAtom(symbolic.VerGE, pkg.ID, 0)))

	n := pkg.NewestVersionNumber()
	for verCounter := model.Version(1); verCounter <= n; verCounter++ {
		ver := pkg.VersionAt(verCounter)
		eqFormula := v.Eq(verCounter)
		eqSym := enc.arena.AtomExpr(verAtom(symbolic.VerEq, pkg.ID, verCounter))
		modifiedCont := func(f *engine.Formula, sym symbolic.Ref) {
			cont(engine.Implies(eqFormula, f), enc.arena.Implies(eqSym, sym))
		}
		enc.RequirementSetConstraints(repo, ver.Requirements, modifiedCont)
	}

	cont(v.Le(n), enc.arena.AtomExpr(verAtom(symbolic.VerLE, pkg.ID, n)))
}

// AddAllConstraints emits every closure package's own constraints followed
// by the top-level requirement set's constraints — the full set a driver
// needs to assert before checking satisfiability.
func (enc *Encoder) AddAllConstraints(repo *model.Repository, pids []model.PackageID, requirements model.RequirementSet, cont Cont) {
	for _, pid := range pids {
		pkg := repo.GetPackageUnchecked(pid)
		enc.PackageConstraints(repo, pkg, cont)
	}
	enc.RequirementSetConstraints(repo, requirements, cont)
}
